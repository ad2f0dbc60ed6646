package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-lotes/internal/application/dto"
	"github.com/jhoicas/Inventario-lotes/internal/application/inventory"
	"github.com/jhoicas/Inventario-lotes/pkg/logger"
	"github.com/shopspring/decimal"
)

// StockHandler maneja movimientos, asignación FEFO y consultas de stock (protegido).
type StockHandler struct {
	engine    *inventory.MovementEngine
	fefo      *inventory.FEFOMovementUseCase
	allocator *inventory.AllocatorUseCase
	summary   *inventory.SummaryUseCase
	ledger    *inventory.LedgerUseCase
	log       *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(
	engine *inventory.MovementEngine,
	fefo *inventory.FEFOMovementUseCase,
	allocator *inventory.AllocatorUseCase,
	summary *inventory.SummaryUseCase,
	ledger *inventory.LedgerUseCase,
	log *logger.Logger,
) *StockHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &StockHandler{engine: engine, fefo: fefo, allocator: allocator, summary: summary, ledger: ledger, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, movement_type, quantity con signo, lot_id opcional"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	mov, err := h.engine.RegisterMovementFromRequest(c.UserContext(), GetVenueID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockMovementResponse(mov))
}

// ConsumeFEFO godoc
// @Summary      Consumir stock en orden FEFO
// @Description  Reparte la cantidad entre lotes por vencimiento más próximo. Responde un movimiento por lote.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeFEFORequest  true  "product_id, quantity positiva"
// @Success      201   {object}  dto.ListResponse[dto.StockMovementResponse]
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/fefo/consume [post]
func (h *StockHandler) ConsumeFEFO(c *fiber.Ctx) error {
	var in dto.ConsumeFEFORequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	movements, err := h.fefo.ConsumeFromRequest(c.UserContext(), GetVenueID(c), GetUserID(c), in)
	if err != nil {
		var partial *inventory.PartialConsumptionError
		if errors.As(err, &partial) {
			return c.Status(fiber.StatusConflict).JSON(dto.PartialConsumptionResponse{
				Code:        "PARTIAL_CONSUMPTION",
				Message:     partial.Error(),
				FailedLotID: partial.FailedLotID,
				Movements:   dto.NewStockMovementList(partial.Committed),
			})
		}
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewListResponse(dto.NewStockMovementList(movements)))
}

// GetAllocation godoc
// @Summary      Simular asignación FEFO
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true  "product id"
// @Param        quantity  query  string  true  "cantidad a asignar"
// @Success      200  {object}  dto.AllocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/allocation [get]
func (h *StockHandler) GetAllocation(c *fiber.Ctx) error {
	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		return badRequest(c, "VALIDATION", "quantity debe ser un número")
	}
	result, err := h.allocator.AllocateFEFO(c.UserContext(), c.Params("id"), quantity, GetVenueID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(newAllocationResponse(result))
}

// GetSummary godoc
// @Summary      Resumen de stock
// @Description  Stock del producto con sus lotes activos en orden FEFO.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "product id"
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/summary [get]
func (h *StockHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.summary.GetSummary(c.UserContext(), c.Params("id"), GetVenueID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(newSummaryResponse(summary))
}

// ListProductMovements ledger del producto en orden de creación.
// @Summary      Ledger del producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "product id"
// @Success      200  {object}  dto.ListResponse[dto.StockMovementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/movements [get]
func (h *StockHandler) ListProductMovements(c *fiber.Ctx) error {
	movements, err := h.ledger.ListByProduct(c.UserContext(), c.Params("id"), GetVenueID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewListResponse(dto.NewStockMovementList(movements)))
}

// GetReconciliation godoc
// @Summary      Conciliar ledger y saldos
// @Description  Reconstruye el stock desde el ledger y lo compara con el saldo del producto y de sus lotes.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "product id"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/reconciliation [get]
func (h *StockHandler) GetReconciliation(c *fiber.Ctx) error {
	rec, err := h.ledger.Reconcile(c.UserContext(), c.Params("id"), GetVenueID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(newReconciliationResponse(rec))
}

// GetMovement movimiento del ledger por id dentro del venue.
// @Summary      Obtener movimiento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "movement id"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [get]
func (h *StockHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.ledger.GetMovement(c.UserContext(), c.Params("id"), GetVenueID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewStockMovementResponse(mov))
}

// ListMovements últimos movimientos del venue; ?limit= se acota al tamaño de página configurado.
// @Summary      Últimos movimientos del venue
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query     int  false  "máximo de movimientos"
// @Success      200    {object}  dto.ListResponse[dto.StockMovementResponse]
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	movements, err := h.ledger.ListByVenue(c.UserContext(), GetVenueID(c), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewListResponse(dto.NewStockMovementList(movements)))
}

func newAllocationResponse(r *inventory.AllocationResult) dto.AllocationResponse {
	lines := make([]dto.AllocationLineResponse, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		lines = append(lines, dto.AllocationLineResponse{
			LotID:          a.LotID,
			LotNumber:      a.LotNumber,
			Quantity:       a.Quantity,
			ExpirationDate: a.ExpirationDate,
			CostPrice:      a.CostPrice,
		})
	}
	return dto.AllocationResponse{
		Success:        r.Success,
		Allocations:    lines,
		TotalAllocated: r.TotalAllocated,
		Shortfall:      r.Shortfall,
		WeightedCost:   r.WeightedCost(),
		Message:        r.Message,
	}
}

func newSummaryResponse(s *inventory.Summary) dto.StockSummaryResponse {
	lots := make([]dto.LotBalanceResponse, 0, len(s.Lots))
	for _, l := range s.Lots {
		lots = append(lots, dto.LotBalanceResponse{
			LotID:          l.LotID,
			LotNumber:      l.LotNumber,
			QtyCurrent:     l.QtyCurrent,
			ExpirationDate: l.ExpirationDate,
			CostPrice:      l.CostPrice,
		})
	}
	return dto.StockSummaryResponse{
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		SKU:          s.SKU,
		CurrentStock: s.CurrentStock,
		MinimumStock: s.MinimumStock,
		BelowMinimum: s.BelowMinimum,
		TrackLots:    s.TrackLots,
		Lots:         lots,
	}
}

func newReconciliationResponse(r *inventory.Reconciliation) dto.ReconciliationResponse {
	discrepancies := make([]dto.DiscrepancyResponse, 0, len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		discrepancies = append(discrepancies, dto.DiscrepancyResponse{MovementID: d.MovementID, Detail: d.Detail})
	}
	return dto.ReconciliationResponse{
		ProductID:     r.ProductID,
		Movements:     r.Movements,
		LedgerStock:   r.LedgerStock,
		CurrentStock:  r.CurrentStock,
		LotStock:      r.LotStock,
		Consistent:    r.Consistent,
		Discrepancies: discrepancies,
	}
}
