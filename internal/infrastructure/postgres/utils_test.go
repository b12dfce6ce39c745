package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jmcanizales/papeleria-api/internal/domain"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "error simulado"}
}

func TestIsRetryableConflict(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		want   bool
	}{
		{"serialization failure", pgError("40001"), true},
		{"deadlock detectado", pgError("40P01"), true},
		{"deadlock envuelto", fmt.Errorf("get item for update: %w", pgError("40P01")), true},
		{"violacion de unique no es contencion", pgError("23505"), false},
		{"violacion de FK no es contencion", pgError("23503"), false},
		{"error cualquiera", errors.New("se cayó la red"), false},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableConflict(tc.err))
		})
	}
}

func TestWrapRetryableConflict(t *testing.T) {
	wrapped := wrapRetryableConflict(fmt.Errorf("finalizar inventario: %w", pgError("40P01")))
	assert.ErrorIs(t, wrapped, domain.ErrConflict)
	assert.Contains(t, wrapped.Error(), "40P01")

	otro := errors.New("otra cosa")
	assert.Same(t, otro, wrapRetryableConflict(otro))
	assert.NotErrorIs(t, wrapRetryableConflict(pgError("23505")), domain.ErrConflict)
	assert.NoError(t, wrapRetryableConflict(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError("23505")))
	assert.True(t, isUniqueViolation(fmt.Errorf("create categoria: %w", pgError("23505"))))
	assert.False(t, isUniqueViolation(pgError("40001")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(pgError("23503")))
	assert.False(t, isForeignKeyViolation(errors.New("sin código")))
}
