package player

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/pixil98/go-clicker/internal"
	"github.com/pixil98/go-clicker/internal/storage"
)

const maxPasswordTries = 3

type loginFlow struct {
	aStore storage.Storer[*Account]
}

func (f *loginFlow) Run(rw io.ReadWriter) (*Account, error) {
	rw.Write([]byte("Welcome to Clicker!\n"))

	for {
		// Get the account name
		username, err := internal.Prompt(rw, "By what name do you wish to be known? ",
			internal.WithValidator(func(str string) (bool, string) {
				if !accountNamePattern.MatchString(str) {
					return false, "Invalid name, please try another.\n"
				}
				return true, ""
			},
			))
		if err != nil {
			return nil, err
		}

		// Look up the account
		account := f.aStore.Get(strings.ToLower(username))

		// Must be a new account
		if account == nil {
			account, err = f.newAccount(rw, username)
			if err != nil {
				return nil, err
			}
			if account == nil {
				continue
			}

			// Existing account
		} else {
			_, err = internal.Prompt(rw, "Password: ", internal.WithMaxTries(maxPasswordTries), internal.WithValidator(
				func(str string) (bool, string) {
					if account.Password != str {
						return false, ""
					}

					return true, ""
				},
			))
			if err != nil {
				return nil, err
			}
		}

		return account, nil
	}
}

func (f *loginFlow) newAccount(rw io.ReadWriter, username string) (*Account, error) {
	ok, err := internal.PromptYN(rw, fmt.Sprintf("Did I get that right, %s (Y/N)? ", username))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	for {
		passOne, err := internal.Prompt(rw, fmt.Sprintf("Give me a password for %s: ", username), internal.WithValidator(
			func(str string) (bool, string) {
				if len(str) == 0 || strings.EqualFold(str, username) {
					return false, "Illegal Password.\n"
				}

				return true, ""
			},
		))
		if err != nil {
			return nil, err
		}

		passTwo, err := internal.Prompt(rw, "Please retype password: ")
		if err != nil {
			return nil, err
		}

		if passOne != passTwo {
			rw.Write([]byte("Passwords don't match... start over.\n"))
			continue
		}

		return &Account{
			Name:     username,
			OwnerId:  uuid.NewString(),
			Password: passOne,
		}, nil
	}
}
