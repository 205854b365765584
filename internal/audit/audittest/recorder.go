// Package audittest provides an in-memory audit recorder for tests.
package audittest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MrJamesThe3rd/contratos/internal/audit"
)

// Recorder collects entries passed to Record.
type Recorder struct {
	mu      sync.Mutex
	Entries []audit.Entry
}

func (r *Recorder) Record(_ context.Context, e audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Entries = append(r.Entries, e)
}

// Actions returns the recorded action kinds in order.
func (r *Recorder) Actions() []audit.Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]audit.Action, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.ActionType
	}

	return out
}

// Decode unmarshals raw into a generic map, for asserting on snapshot keys.
func Decode(raw json.RawMessage) map[string]any {
	if raw == nil {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}

	return m
}
