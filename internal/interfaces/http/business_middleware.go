package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/application/usecase"
)

// RequireBusinessAccess verifica que el negocio del path le pertenezca al
// usuario: o es el negocio de su token o es dueño del negocio. Corre después
// de AuthMiddleware, sobre las rutas /user/businesses/:businessID/*.
func RequireBusinessAccess(businessUC *usecase.BusinessUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		businessID := c.Params("businessID")
		if businessID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "business id requerido"})
		}
		if businessID == GetBusinessID(c) {
			return c.Next()
		}
		business, err := businessUC.GetByID(businessID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if business == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "negocio no encontrado"})
		}
		if business.OwnerID != GetUserID(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin acceso a este negocio"})
		}
		return c.Next()
	}
}
