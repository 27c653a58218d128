package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", Unauthenticated(nil), http.StatusUnauthorized},
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"duplicate", DuplicateName("dup"), http.StatusBadRequest},
		{"conflict", Conflict("in use"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"unexpected", Unexpected("op", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternals(t *testing.T) {
	assert.Equal(t, "Error interno del servidor", PublicMessage(Unexpected("insert", errors.New("pq: connection refused"))))
	assert.Equal(t, "Error interno del servidor", PublicMessage(errors.New("raw")))
	assert.Equal(t, "No autenticado", PublicMessage(Unauthenticated(errors.New("token expired"))))
	assert.Equal(t, "Categoría no encontrada", PublicMessage(NotFound("Categoría no encontrada")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", DuplicateName("dup"))

	assert.Equal(t, KindDuplicateName, KindOf(err))
	assert.True(t, Is(err, KindDuplicateName))
	assert.False(t, Is(nil, KindUnexpected))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Unexpected("op", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unexpected")
}
