package game

import "errors"

// ErrSessionExists is returned when a second session tries to
// register an engine for an owner that already has one live.
var ErrSessionExists = errors.New("session already exists for this player")
