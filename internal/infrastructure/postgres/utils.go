package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmcanizales/papeleria-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

// isRetryableConflict verifica si un error es contención transitoria entre
// transacciones: 40001 (serialization_failure) o 40P01 (deadlock_detected).
// PostgreSQL abortó una de las transacciones en disputa; reintentarla es seguro.
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return strings.Contains(err.Error(), "40001") || strings.Contains(err.Error(), "40P01")
}

// wrapRetryableConflict traduce la contención transitoria a domain.ErrConflict
// conservando el detalle original; cualquier otro error pasa sin tocar.
func wrapRetryableConflict(err error) error {
	if err != nil && isRetryableConflict(err) {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return err
}
