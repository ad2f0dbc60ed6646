package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-lotes/internal/application/dto"
	"github.com/jhoicas/Inventario-lotes/internal/application/inventory"
	"github.com/jhoicas/Inventario-lotes/internal/domain/entity"
	"github.com/jhoicas/Inventario-lotes/pkg/logger"
)

// LotHandler alta, baja y consulta de lotes (protegido).
type LotHandler struct {
	uc          *inventory.LotUseCase
	defaultDays int
	log         *logger.Logger
}

// NewLotHandler defaultDays es la ventana usada cuando GET /lots/expiring no trae ?days=.
func NewLotHandler(uc *inventory.LotUseCase, defaultDays int, log *logger.Logger) *LotHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &LotHandler{uc: uc, defaultDays: defaultDays, log: log}
}

// Receive godoc
// @Summary      Recibir lote
// @Description  Crea el lote y registra la entrada de compra por qty_initial en la misma transacción.
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveLotRequest  true  "product_id, lot_number, qty_initial, cost_price"
// @Success      201   {object}  dto.ReceiveLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	lot, mov, err := h.uc.ReceiveFromRequest(c.UserContext(), GetVenueID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiveLotResponse{
		Lot:      dto.NewLotResponse(lot),
		Movement: dto.NewStockMovementResponse(mov),
	})
}

// Retire godoc
// @Summary      Retirar lote
// @Description  Baja lógica; solo lotes sin stock.
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "lot id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [delete]
func (h *LotHandler) Retire(c *fiber.Ctx) error {
	if err := h.uc.RetireLot(c.UserContext(), c.Params("id"), GetVenueID(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Expiring godoc
// @Summary      Lotes por vencer
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        days  query     int  false  "ventana en días"
// @Success      200   {object}  dto.ListResponse[dto.LotResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lots/expiring [get]
func (h *LotHandler) Expiring(c *fiber.Ctx) error {
	lots, err := h.uc.ExpiringSoon(c.UserContext(), GetVenueID(c), c.QueryInt("days", h.defaultDays))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewListResponse(newLotList(lots)))
}

func newLotList(lots []*entity.Lot) []dto.LotResponse {
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.NewLotResponse(l))
	}
	return out
}
