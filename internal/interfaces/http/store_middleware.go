package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/avatax-connector/internal/application/dto"
)

// RequireStoreAccess verifica que el token tenga acceso a la tienda del parámetro :id.
// Debe usarse DESPUÉS de AuthMiddleware. Un token sin store_id accede a todas.
func RequireStoreAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("id")
		if storeID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de tienda requerido"})
		}
		if scoped := GetStoreID(c); scoped != "" && scoped != storeID {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "STORE_FORBIDDEN",
				Message: "el token no tiene acceso a la tienda '" + storeID + "'",
			})
		}
		return c.Next()
	}
}
