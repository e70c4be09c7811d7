package driver

import (
	"context"
	"time"
)

const (
	// DefaultTickLength matches the one-second economy cadence the
	// game balance assumes. Operators can slow it down for debugging
	// but auto-generation rates are defined per second.
	DefaultTickLength = time.Second
)

type Ticker interface {
	Tick(context.Context) error
}

// GameDriver fires every tick interval and drives each handler in
// order. It is the only component that advances game time.
type GameDriver struct {
	tickLength time.Duration
	handlers   []Ticker
}

func NewGameDriver(h []Ticker, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		handlers:   h,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *GameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *GameDriver) Tick(ctx context.Context) error {
	for _, m := range d.handlers {
		err := m.Tick(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
