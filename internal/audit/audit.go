// Package audit writes the append-only change ledger ("trazas"). Every
// create, update, delete and use action records who did it, from where, and
// the formatted values before and after.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of change recorded in an entry.
type Action string

const (
	ActionInsert   Action = "INSERT"
	ActionUpdate   Action = "UPDATE"
	ActionDelete   Action = "DELETE"
	ActionUse      Action = "USE"
	ActionLogin    Action = "LOGIN"
	ActionRegister Action = "REGISTER"
)

// Entry is one ledger record. The JSON form is the reporting contract consumed
// outside this service.
type Entry struct {
	EntityName string          `json:"entity_name"`
	EntityID   *string         `json:"entity_id,omitempty"`
	OldValue   json.RawMessage `json:"old_value,omitempty"`
	NewValue   json.RawMessage `json:"new_value,omitempty"`
	ActionType Action          `json:"action_type"`
	ChangedBy  string          `json:"changed_by"`
	IPAddress  string          `json:"ip_address"`
	SessionID  string          `json:"session_id"`
	Metadata   string          `json:"metadata"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewEntry starts an entry for the given entity. id may be uuid.Nil when the
// action has no entity id.
func NewEntry(entity string, id uuid.UUID, action Action, actor string) Entry {
	e := Entry{
		EntityName: entity,
		ActionType: action,
		ChangedBy:  actor,
	}

	if id != uuid.Nil {
		s := id.String()
		e.EntityID = &s
	}

	return e
}

// WithOld sets the old value snapshot.
func (e Entry) WithOld(v any) Entry {
	e.OldValue = marshal(v)
	return e
}

// WithNew sets the new value snapshot.
func (e Entry) WithNew(v any) Entry {
	e.NewValue = marshal(v)
	return e
}

func marshal(v any) json.RawMessage {
	if v == nil {
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal audit value", "error", err)
		return nil
	}

	return b
}

var (
	errMissingEntity = errors.New("audit entry requires an entity name")
	errMissingAction = errors.New("audit entry requires an action")
	errMissingActor  = errors.New("audit entry requires an actor")
)

// Validate checks the fields every entry must carry.
func (e Entry) Validate() error {
	switch {
	case e.EntityName == "":
		return errMissingEntity
	case e.ActionType == "":
		return errMissingAction
	case e.ChangedBy == "":
		return errMissingActor
	}

	return nil
}

//go:generate mockgen -source=audit.go -destination=repository_mock.go -package=audit
type Repository interface {
	Append(ctx context.Context, e *Entry) error
}

// Writer appends entries to the ledger. Recording is best effort: a failed
// append is logged and never reported to the caller, so the domain write that
// triggered it still succeeds.
type Writer struct {
	repo Repository
	now  func() time.Time
}

func NewWriter(repo Repository) *Writer {
	return &Writer{repo: repo, now: time.Now}
}

// Record stamps e with the request provenance from ctx and the current time,
// then appends it.
func (w *Writer) Record(ctx context.Context, e Entry) {
	if err := e.Validate(); err != nil {
		slog.Error("dropping invalid audit entry", "entity", e.EntityName, "action", e.ActionType, "error", err)
		return
	}

	p := ProvenanceFrom(ctx)
	if e.IPAddress == "" {
		e.IPAddress = p.IPAddress
	}

	if e.SessionID == "" {
		e.SessionID = p.SessionID
	}

	if e.Metadata == "" {
		e.Metadata = p.UserAgent
	}

	if e.Timestamp.IsZero() {
		e.Timestamp = w.now().UTC()
	}

	if err := w.repo.Append(ctx, &e); err != nil {
		slog.Error("failed to record audit entry",
			"entity", e.EntityName,
			"action", e.ActionType,
			"changed_by", e.ChangedBy,
			"error", err,
		)
	}
}
