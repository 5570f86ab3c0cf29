package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/application/usecase"
	"github.com/jhoicas/Crm-api/internal/domain"
)

// DealHandler maneja las peticiones HTTP para deals (protegido).
type DealHandler struct {
	uc *usecase.DealUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *usecase.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear deal (sin etapa explícita cae en la de entrada)
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        pipelineID  path  string  true  "ID del pipeline"
// @Param        body  body  dto.CreateDealRequest  true  "Datos del deal"
// @Success      201   {object}  dto.DealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/pipelines/{pipelineID}/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CustomerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_name es requerido"})
	}
	if !in.Value.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "value es requerido y debe ser mayor a cero"})
	}
	out, err := h.uc.Create(c.Params("businessID"), c.Params("pipelineID"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la etapa no pertenece al pipeline"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener deal por ID
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del deal"
// @Success      200  {object}  dto.DealResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/deals/{id} [get]
func (h *DealHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar deal
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del deal"
// @Param        body  body  dto.UpdateDealRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.DealResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/deals/{id} [put]
func (h *DealHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover deal a otra columna (se confirma antes de responder)
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del deal"
// @Param        body  body  dto.MoveDealRequest  true  "stage_id destino"
// @Success      200   {object}  dto.DealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/deals/{id}/move [post]
func (h *DealHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.StageID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage_id es requerido"})
	}
	out, err := h.uc.MoveToStage(c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "etapa destino no encontrada"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la etapa no pertenece al pipeline del deal"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DEAL_ARCHIVED", Message: "un deal archivado no se mueve"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar deal (sale del tablero sin borrarse)
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del deal"
// @Success      200  {object}  dto.DealResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/businesses/{businessID}/deals/{id}/archive [post]
func (h *DealHandler) Archive(c *fiber.Ctx) error {
	out, err := h.uc.Archive(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
	}
	return c.JSON(out)
}
