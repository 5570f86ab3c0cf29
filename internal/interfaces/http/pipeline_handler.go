package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/application/usecase"
)

// PipelineHandler maneja las peticiones HTTP para pipelines (protegido).
// Los pipelines no tienen DELETE: solo alta y edición.
type PipelineHandler struct {
	uc *usecase.PipelineUseCase
}

// NewPipelineHandler construye el handler.
func NewPipelineHandler(uc *usecase.PipelineUseCase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pipeline
// @Tags         pipelines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePipelineRequest  true  "Datos del pipeline"
// @Success      201   {object}  dto.PipelineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/pipelines [post]
func (h *PipelineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePipelineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.Params("businessID"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pipelines del negocio
// @Tags         pipelines
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PipelineResponse
// @Router       /api/user/businesses/{businessID}/pipelines [get]
func (h *PipelineHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Params("businessID"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pipeline por ID
// @Tags         pipelines
// @Security     Bearer
// @Produce      json
// @Param        pipelineID  path  string  true  "ID del pipeline"
// @Success      200  {object}  dto.PipelineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/pipelines/{pipelineID} [get]
func (h *PipelineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("pipelineID"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pipeline no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar pipeline (incluye configuración de mensajería)
// @Tags         pipelines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        pipelineID  path  string  true  "ID del pipeline"
// @Param        body  body  dto.UpdatePipelineRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PipelineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/pipelines/{pipelineID} [put]
func (h *PipelineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePipelineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("pipelineID"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pipeline no encontrado"})
	}
	return c.JSON(out)
}

// Board godoc
// @Summary      Tablero kanban completo del pipeline
// @Tags         pipelines
// @Security     Bearer
// @Produce      json
// @Param        pipelineID  path  string  true  "ID del pipeline"
// @Success      200  {object}  dto.BoardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/pipelines/{pipelineID}/board [get]
func (h *PipelineHandler) Board(c *fiber.Ctx) error {
	out, err := h.uc.Board(c.Params("pipelineID"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pipeline no encontrado"})
	}
	return c.JSON(out)
}

// Metrics godoc
// @Summary      Métricas por etapa y total ganado del pipeline
// @Tags         pipelines
// @Security     Bearer
// @Produce      json
// @Param        pipelineID  path  string  true  "ID del pipeline"
// @Success      200  {object}  dto.PipelineMetricsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/pipelines/{pipelineID}/metrics [get]
func (h *PipelineHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.Metrics(c.Params("pipelineID"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pipeline no encontrado"})
	}
	return c.JSON(out)
}
