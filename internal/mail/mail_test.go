package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/contratos/internal/notification"
)

func TestPayload(t *testing.T) {
	data, err := payload(notification.Email{
		To:       []string{"dir@norte.gob"},
		Template: "contrato_por_vencer",
		Data:     map[string]any{"dictamen": "D-1"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":["dir@norte.gob"],"template":"contrato_por_vencer","data":{"dictamen":"D-1"}}`, string(data))

	_, err = payload(notification.Email{Template: "contrato_por_vencer"})
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var m notification.Mailer = Noop{}
	m.Send(context.Background(), notification.Email{To: []string{"a@b.c"}})
}
