package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
)

func TestError_Is(t *testing.T) {
	errMissing := apperr.New(apperr.NotFound, "contract not found")
	wrapped := fmt.Errorf("loading: %w", errMissing)

	assert.ErrorIs(t, wrapped, errMissing)
	assert.ErrorIs(t, wrapped, apperr.New(apperr.NotFound, ""))
	assert.NotErrorIs(t, wrapped, apperr.New(apperr.NotFound, "supplement not found"))
	assert.NotErrorIs(t, wrapped, apperr.New(apperr.Conflict, ""))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{name: "Plain", err: errors.New("boom"), want: apperr.Internal},
		{name: "Direct", err: apperr.New(apperr.Forbidden, "no"), want: apperr.Forbidden},
		{name: "Wrapped", err: fmt.Errorf("x: %w", apperr.New(apperr.Validation, "bad")), want: apperr.Validation},
		{name: "WrapHelper", err: apperr.Wrap(apperr.ExternalService, "store down", errors.New("dial")), want: apperr.ExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestMessage_HidesInternal(t *testing.T) {
	assert.Equal(t, "internal error", apperr.Message(errors.New("pq: connection reset")))
	assert.Equal(t, "bad date", apperr.Message(apperr.New(apperr.Validation, "bad date")))
	assert.Equal(t, "store down: dial", apperr.Wrap(apperr.ExternalService, "store down", errors.New("dial")).Error())
}
