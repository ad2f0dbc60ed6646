package inventory

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Inventario-lotes/internal/domain"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
)

// Clases de error reportadas a métricas y logs.
const (
	ErrorKindNotFound         = "not_found"
	ErrorKindInvalidArgument  = "invalid_argument"
	ErrorKindInvalidOperation = "invalid_operation"
	ErrorKindDuplicate        = "duplicate"
	ErrorKindInternal         = "internal"
)

// ErrorKind clasifica err según los errores de dominio.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNotFound):
		return ErrorKindNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return ErrorKindInvalidArgument
	case errors.Is(err, domain.ErrInvalidOperation):
		return ErrorKindInvalidOperation
	case errors.Is(err, domain.ErrDuplicate):
		return ErrorKindDuplicate
	default:
		return ErrorKindInternal
	}
}

// PartialConsumptionError se devuelve en modo por-lote cuando un consumo FEFO falla a mitad de camino.
// Los movimientos de Committed ya quedaron confirmados; FailedLotID es el lote cuyo movimiento falló.
type PartialConsumptionError struct {
	Committed   []*entity.StockMovement
	FailedLotID string
	Err         error
}

func (e *PartialConsumptionError) Error() string {
	return fmt.Sprintf("consumo FEFO parcial: %d lote(s) aplicados, falló el lote %s: %v",
		len(e.Committed), e.FailedLotID, e.Err)
}

func (e *PartialConsumptionError) Unwrap() error { return e.Err }
