package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// validID indica si id es un UUID; los ids que no lo son no existen (la columna es UUID y
// PostgreSQL rechazaría la consulta con 22P02).
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// pageClause LIMIT/OFFSET; limit <= 0 devuelve todas las filas.
func pageClause(limit, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return fmt.Sprintf(" OFFSET %d", offset)
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}
