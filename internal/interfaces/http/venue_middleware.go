package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-lotes/internal/application/dto"
)

// HeaderVenueID permite a un admin operar sobre otro venue.
const HeaderVenueID = "X-Venue-ID"

// RequireVenue resuelve el venue de la petición. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - Sin X-Venue-ID se usa el venue_id del token; si falta, 401.
//   - Un admin puede indicar otro venue con X-Venue-ID.
//   - Para cualquier otro rol, un X-Venue-ID distinto al del token es 403.
func RequireVenue() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenVenue := GetVenueID(c)
		requested := strings.TrimSpace(c.Get(HeaderVenueID))

		if requested != "" && requested != tokenVenue {
			if GetRole(c) != RoleAdmin {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "VENUE_FORBIDDEN",
					Message: "sin acceso al venue " + requested,
				})
			}
			c.Locals(LocalVenueID, requested)
			return c.Next()
		}

		if tokenVenue == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "venue_id no encontrado en el token",
			})
		}
		return c.Next()
	}
}
