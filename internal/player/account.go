package player

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-clicker/internal/storage"
)

var accountNamePattern = regexp.MustCompile(`^[a-zA-Z]+$`)

// Account ties a login name to the owner id that keys every save and
// leaderboard entry. The owner id is minted once, at account creation,
// and never changes even if the player renames themselves on the
// leaderboard.
type Account struct {
	Name     string `json:"name"`
	OwnerId  string `json:"owner_id"`
	Password string `json:"password"` //TODO hash this before writing it to disk

	storage.ExtensionState `json:"ext,omitempty"`
}

func (a *Account) Validate() error {
	el := errors.NewErrorList()

	if a.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	} else if !accountNamePattern.MatchString(a.Name) {
		el.Add(fmt.Errorf("name must contain only letters"))
	}

	if a.OwnerId == "" {
		el.Add(fmt.Errorf("owner id must be set"))
	}

	return el.Err()
}
