package telemetry

import (
	"context"
	"errors"

	"github.com/jhoicas/Inventario-lotes/internal/domain/repository"
)

// failingRunner nunca abre transacción; los tests que lo usan fallan antes en la validación.
type failingRunner struct{}

func (failingRunner) Run(context.Context, func(repository.StockMovementRepository, repository.LotRepository, repository.ProductRepository) error) error {
	return errors.New("sin base de datos")
}
