package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-clicker/internal/display"
	"github.com/pixil98/go-clicker/internal/game"
)

// Session is one connected player. Input lines become engine commands;
// engine events arrive over the bus and are shown between prompts.
type Session struct {
	conn    io.ReadWriter
	account *Account
	engine  *game.Engine
	mgr     *SessionManager

	msgs chan []byte
}

func (s *Session) Play(ctx context.Context) error {
	// Read input lines into a channel so the select loop can also
	// watch the bus and the context. done stops the reader once the
	// loop returns; without it a pending line would block the send
	// side forever.
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(inputChan)
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-done:
				return
			}
		}
		inputErrChan <- scanner.Err()
	}()

	err := s.writeLine(fmt.Sprintf("Hello, %s! Type 'help' for commands, or just press enter to click.", display.Capitalize(s.account.Name)))
	if err != nil {
		return err
	}
	if err := s.showPanel("stats"); err != nil {
		return err
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			var ev game.Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				slog.WarnContext(ctx, "decoding game event", "owner", s.engine.OwnerId(), "error", err)
				continue
			}
			if err := s.writeLine("\n*** " + ev.Message); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			quit, err := s.exec(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			if quit {
				s.writeLine("Goodbye!")
				return nil
			}

			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

func (s *Session) prompt() error {
	snap := s.engine.Snapshot()
	p := fmt.Sprintf("[%s coins] > ", display.FormatNumber(snap.Coins))
	if snap.IsPaused {
		p = "[paused] > "
	}
	_, err := s.conn.Write([]byte(p))
	return err
}

func (s *Session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(display.Wrap(msg) + "\n"))
	return err
}

func (s *Session) showPanel(name string) error {
	out, err := s.renderPanel(name)
	if err != nil {
		slog.Warn("rendering panel", "panel", name, "error", err)
		return s.writeLine("Something went wrong rendering that.")
	}
	return s.writeLine(out)
}

func (s *Session) renderPanel(name string) (string, error) {
	snap := s.engine.Snapshot()

	var view any
	switch name {
	case "stats":
		view = display.NewStatsView(snap)
	case "upgrades":
		view = display.NewUpgradesView(snap)
	case "shop":
		view = display.NewShopView(snap)
	case "buffs":
		view = display.NewBuffsView(snap, s.engine.Now())
	case "journal":
		view = display.NewJournalView(snap)
	default:
		return "", fmt.Errorf("unknown panel %q", name)
	}

	return display.Render(name, view)
}
