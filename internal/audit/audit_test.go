package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/contratos/internal/audit"
)

func TestWriter_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	w := audit.NewWriter(repo)

	ctx := audit.WithProvenance(context.Background(), audit.Provenance{
		IPAddress: "10.0.0.7",
		SessionID: "sess-1",
		UserAgent: "Firefox on Linux",
	})

	id := uuid.New()

	var got *audit.Entry

	repo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *audit.Entry) error {
			got = e
			return nil
		})

	w.Record(ctx, audit.NewEntry("Contratos", id, audit.ActionInsert, "Ana").
		WithNew(map[string]string{"Entidad": "ETECSA"}))

	require.NotNil(t, got)
	assert.Equal(t, "Contratos", got.EntityName)
	require.NotNil(t, got.EntityID)
	assert.Equal(t, id.String(), *got.EntityID)
	assert.Equal(t, audit.ActionInsert, got.ActionType)
	assert.Equal(t, "Ana", got.ChangedBy)
	assert.Equal(t, "10.0.0.7", got.IPAddress)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, "Firefox on Linux", got.Metadata)
	assert.False(t, got.Timestamp.IsZero())
	assert.Nil(t, got.OldValue)
	assert.JSONEq(t, `{"Entidad":"ETECSA"}`, string(got.NewValue))
}

func TestWriter_Record_SwallowsRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	assert.NotPanics(t, func() {
		audit.NewWriter(repo).Record(context.Background(), audit.NewEntry("Suplemento", uuid.New(), audit.ActionDelete, "Ana"))
	})
}

func TestWriter_Record_DropsInvalidEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Append expectation: an entry without actor must never reach storage.
	repo := audit.NewMockRepository(ctrl)
	audit.NewWriter(repo).Record(context.Background(), audit.NewEntry("Contratos", uuid.Nil, audit.ActionInsert, ""))
}

func TestEntry_JSONShape(t *testing.T) {
	e := audit.NewEntry("Contratos", uuid.Nil, audit.ActionDelete, "Ana").WithOld(map[string]string{"Estado": "Firmado"})

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	assert.NotContains(t, m, "entity_id")
	assert.NotContains(t, m, "new_value")
	assert.Contains(t, m, "old_value")

	for _, k := range []string{"entity_name", "action_type", "changed_by", "ip_address", "session_id", "metadata", "timestamp"} {
		assert.Contains(t, m, k)
	}
}
