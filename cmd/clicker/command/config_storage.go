package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-clicker/internal/catalog"
	"github.com/pixil98/go-clicker/internal/persist"
	"github.com/pixil98/go-clicker/internal/player"
	"github.com/pixil98/go-clicker/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	SavesPath    string `json:"saves_path"`
	AccountsPath string `json:"accounts_path"`
	ExportsPath  string `json:"exports_path"`

	// Catalog overrides. When unset the built-in catalog is used.
	Catalog CatalogConfig `json:"catalog,omitempty"`
}

type CatalogConfig struct {
	UpgradesPath     string `json:"upgrades_path,omitempty"`
	CollectiblesPath string `json:"collectibles_path,omitempty"`
	BuffsPath        string `json:"buffs_path,omitempty"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.SavesPath == "" {
		el.Add(fmt.Errorf("saves_path is required"))
	}
	if c.AccountsPath == "" {
		el.Add(fmt.Errorf("accounts_path is required"))
	}
	if c.ExportsPath == "" {
		el.Add(fmt.Errorf("exports_path is required"))
	}

	el.Add(c.Catalog.validate())

	return el.Err()
}

func (c *CatalogConfig) validate() error {
	el := errors.NewErrorList()

	// All three override paths come together or not at all; a partial
	// catalog would strand saved games.
	set := 0
	for _, p := range []string{c.UpgradesPath, c.CollectiblesPath, c.BuffsPath} {
		if p != "" {
			set++
			if _, err := os.Stat(p); err != nil {
				el.Add(fmt.Errorf("invalid path %q: %w", p, err))
			}
		}
	}
	if set != 0 && set != 3 {
		el.Add(fmt.Errorf("upgrades_path, collectibles_path, and buffs_path must be set together"))
	}

	return el.Err()
}

func (c *StorageConfig) BuildAccountStore() (*storage.FileStore[*player.Account], error) {
	err := os.MkdirAll(c.AccountsPath, 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating accounts directory: %w", err)
	}
	return storage.NewFileStore[*player.Account](c.AccountsPath)
}

func (c *StorageConfig) BuildLocalStore() (*persist.LocalStore, error) {
	return persist.NewLocalStore(c.SavesPath)
}

func (c *StorageConfig) BuildCatalog() (*catalog.Catalog, error) {
	if c.Catalog.UpgradesPath == "" {
		return catalog.Builtin(), nil
	}

	upgrades, err := storage.NewFileStore[*catalog.UpgradeSpec](c.Catalog.UpgradesPath)
	if err != nil {
		return nil, fmt.Errorf("creating upgrade store: %w", err)
	}
	collectibles, err := storage.NewFileStore[*catalog.CollectibleSpec](c.Catalog.CollectiblesPath)
	if err != nil {
		return nil, fmt.Errorf("creating collectible store: %w", err)
	}
	buffs, err := storage.NewFileStore[*catalog.BuffSpec](c.Catalog.BuffsPath)
	if err != nil {
		return nil, fmt.Errorf("creating buff store: %w", err)
	}

	return catalog.New(upgrades.GetAll(), collectibles.GetAll(), buffs.GetAll())
}
