package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A promptValidator checks one line of input, returning false and a
// message to show the player when the input is unacceptable.
type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

// WithMaxTries bounds how many rejected inputs are tolerated before
// Prompt gives up. Zero means unlimited.
func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt to rw and reads one line back, re-prompting
// until the validator (if any) accepts the input.
func Prompt(rw io.ReadWriter, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	scanner := bufio.NewScanner(rw)
	for tries := 0; ; tries++ {
		if config.tries > 0 && tries == config.tries {
			rw.Write([]byte("too many tries"))
			return "", fmt.Errorf("too many tries")
		}

		if _, err := rw.Write([]byte(prompt)); err != nil {
			return "", err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		input := strings.TrimRight(scanner.Text(), "\r")

		if config.validator == nil {
			return input, nil
		}
		ok, msg := config.validator(input)
		if ok {
			return input, nil
		}
		rw.Write([]byte(msg))
	}
}

// PromptYN asks a yes/no question, re-prompting on anything else.
func PromptYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
