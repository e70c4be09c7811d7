package storage

import (
	"encoding/json"
	"fmt"
)

// ExtensionState holds free-form per-record data that doesn't warrant
// its own schema field, e.g. a player's leaderboard display name.
// Values round-trip as raw JSON so unknown keys survive a load/save
// cycle.
type ExtensionState map[string]json.RawMessage

// Set stores v under key, replacing any existing value.
func (e *ExtensionState) Set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}

	if *e == nil {
		*e = ExtensionState{}
	}
	(*e)[key] = b
	return nil
}

// Get unmarshals the value at key into out. A missing key reports
// found=false with no error.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw := e[key]
	if len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// Delete removes key, if present. Safe on a nil state.
func (e ExtensionState) Delete(key string) {
	delete(e, key)
}
