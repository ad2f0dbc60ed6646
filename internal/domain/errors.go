package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// El detalle se adjunta con fmt.Errorf("%w: ...") y se compara con errors.Is.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidArgument  = errors.New("argumento inválido")
	ErrInvalidOperation = errors.New("operación inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
)

// ErrInsufficientStock rechazo por saldo; errors.Is(err, ErrInvalidOperation) también es true.
var ErrInsufficientStock = fmt.Errorf("stock insuficiente: %w", ErrInvalidOperation)

