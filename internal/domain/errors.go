package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingField       = errors.New("campo requerido")
	ErrInvalidStatus      = errors.New("estado inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrAlreadyIssued      = errors.New("el activo ya está asignado")
	ErrNoSeatsAvailable   = errors.New("no hay licencias disponibles")
)

// MissingField devuelve ErrMissingField con el nombre del campo.
func MissingField(name string) error {
	return fmt.Errorf("%w: %s es requerido", ErrMissingField, name)
}
