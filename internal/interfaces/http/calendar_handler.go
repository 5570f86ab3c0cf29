package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Crm-api/internal/application/calendar"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
)

// CalendarHandler maneja la integración de calendario. Connect, Status y
// Disconnect son protegidos; Callback es público porque lo invoca la
// redirección del proveedor y el state identifica al usuario.
type CalendarHandler struct {
	uc *calendar.CalendarUseCase
}

// NewCalendarHandler construye el handler.
func NewCalendarHandler(uc *calendar.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{uc: uc}
}

// Connect godoc
// @Summary      Iniciar conexión del calendario (devuelve la URL de autorización)
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CalendarConnectResponse
// @Router       /api/user/calendar/connect [get]
func (h *CalendarHandler) Connect(c *fiber.Ctx) error {
	out, err := h.uc.Connect(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Callback godoc
// @Summary      Callback OAuth del proveedor (canjea el código por tokens)
// @Tags         calendar
// @Produce      json
// @Param        code   query  string  true  "Código de autorización"
// @Param        state  query  string  true  "State emitido en connect"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/calendar/callback [get]
func (h *CalendarHandler) Callback(c *fiber.Ctx) error {
	in := dto.CalendarCallbackRequest{
		Code:  c.Query("code"),
		State: c.Query("state"),
	}
	if err := h.uc.Callback(c.UserContext(), in); err != nil {
		switch err {
		case domain.ErrInvalidOAuthState:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "state inválido, repetido o vencido"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"connected": true})
}

// Status godoc
// @Summary      Estado de la integración del calendario
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CalendarStatusResponse
// @Router       /api/user/calendar/status [get]
func (h *CalendarHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Disconnect godoc
// @Summary      Desconectar el calendario (borra las credenciales)
// @Tags         calendar
// @Security     Bearer
// @Success      204  "Sin contenido"
// @Router       /api/user/calendar/disconnect [delete]
func (h *CalendarHandler) Disconnect(c *fiber.Ctx) error {
	if err := h.uc.Disconnect(GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
