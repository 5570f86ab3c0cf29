package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/application/usecase"
	"github.com/jhoicas/Crm-api/internal/domain"
)

// StageHandler maneja las peticiones HTTP para etapas del kanban (protegido).
type StageHandler struct {
	uc *usecase.StageUseCase
}

// NewStageHandler construye el handler.
func NewStageHandler(uc *usecase.StageUseCase) *StageHandler {
	return &StageHandler{uc: uc}
}

// Create godoc
// @Summary      Crear etapa (cae al final del tablero)
// @Tags         stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        pipelineID  path  string  true  "ID del pipeline"
// @Param        body  body  dto.CreateStageRequest  true  "Datos de la etapa"
// @Success      201   {object}  dto.StageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/pipelines/{pipelineID}/stages [post]
func (h *StageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.Params("pipelineID"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar etapa (nombre, color, banderas)
// @Tags         stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la etapa"
// @Param        body  body  dto.UpdateStageRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/stages/{id} [put]
func (h *StageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "etapa no encontrada"})
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover etapa un lugar a la izquierda o derecha
// @Tags         stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la etapa"
// @Param        body  body  dto.MoveStageRequest  true  "direction: left | right"
// @Success      200   {object}  dto.StageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/stages/{id}/move [post]
func (h *StageHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Move(c.UserContext(), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser left o right"})
		case domain.ErrStageBoundary:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STAGE_BOUNDARY", Message: "la etapa ya está en el borde del tablero"})
		case domain.ErrReorderInFlight:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REORDER_IN_FLIGHT", Message: "hay otro reordenamiento en curso, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "etapa no encontrada"})
	}
	return c.JSON(out)
}
