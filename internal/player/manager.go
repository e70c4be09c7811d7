package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-clicker/internal/catalog"
	"github.com/pixil98/go-clicker/internal/game"
	"github.com/pixil98/go-clicker/internal/persist"
	"github.com/pixil98/go-clicker/internal/storage"
)

// MessageBus carries game events from engines to sessions. The
// embedded NATS server satisfies it.
type MessageBus interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
	Publish(subject string, data []byte) error
}

// SessionManager runs the login flow and the command loop for each
// connection. One live session per owner: the registry holds the
// owner's engine, and a second login is turned away while the first
// is connected.
type SessionManager struct {
	accounts  storage.Storer[*Account]
	catalog   *catalog.Catalog
	registry  *game.Registry
	local     *persist.LocalStore
	cloud     *persist.CloudStore
	board     *persist.Leaderboard
	bus       MessageBus
	exportDir string

	loginFlow *loginFlow
}

func NewSessionManager(accounts storage.Storer[*Account], cat *catalog.Catalog, registry *game.Registry, local *persist.LocalStore, cloud *persist.CloudStore, board *persist.Leaderboard, bus MessageBus, exportDir string) *SessionManager {
	return &SessionManager{
		accounts:  accounts,
		catalog:   cat,
		registry:  registry,
		local:     local,
		cloud:     cloud,
		board:     board,
		bus:       bus,
		exportDir: exportDir,
		loginFlow: &loginFlow{aStore: accounts},
	}
}

func (m *SessionManager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// RunSession drives one connection from login to disconnect.
func (m *SessionManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	account, err := m.loginFlow.Run(conn)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	// Save the account back to preserve new registrations
	err = m.accounts.Save(strings.ToLower(account.Name), account)
	if err != nil {
		return fmt.Errorf("saving account: %w", err)
	}

	saved, err := m.local.Load(account.OwnerId)
	if err != nil {
		slog.WarnContext(ctx, "loading local save, starting fresh", "owner", account.OwnerId, "error", err)
	}

	engine := game.NewEngine(account.OwnerId, game.Reconcile(saved, m.catalog), m.catalog,
		game.WithPersister(m.local),
		game.WithPublisher(m.bus),
	)

	err = m.registry.Add(engine)
	if err != nil {
		conn.Write([]byte("That account is already playing. Goodbye!\n"))
		return nil
	}
	defer func() {
		m.registry.Remove(account.OwnerId)
		if err := m.cloud.Save(context.WithoutCancel(ctx), account.OwnerId, persist.AutosaveSlot, engine.Snapshot(), true); err != nil {
			slog.WarnContext(ctx, "autosaving on disconnect", "owner", account.OwnerId, "error", err)
		}
	}()

	session := &Session{
		conn:    conn,
		account: account,
		engine:  engine,
		mgr:     m,
		msgs:    make(chan []byte, 8),
	}

	unsub, err := m.bus.Subscribe(game.PlayerSubject(account.OwnerId), func(data []byte) {
		// Drop rather than block: a stalled connection must not back
		// up the bus.
		select {
		case session.msgs <- data:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to player events: %w", err)
	}
	defer unsub()

	return session.Play(ctx)
}
