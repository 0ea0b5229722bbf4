package http

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/avatax-connector/internal/application/dto"
	"github.com/jhoicas/avatax-connector/internal/domain"
)

// SubmissionService lo implementa *avatax.SubmissionUseCase. storeScope es la tienda del token
// (vacío = todas); un documento de otra tienda devuelve domain.ErrForbidden.
type SubmissionService interface {
	SubmitInvoice(ctx context.Context, storeScope, invoiceID string) (*dto.SubmissionResponse, error)
	SubmitCreditMemo(ctx context.Context, storeScope, creditMemoID string) (*dto.SubmissionResponse, error)
}

// StatusService lo implementa *avatax.StatusUseCase.
type StatusService interface {
	Ping(ctx context.Context, storeID string) (*dto.PingResponse, error)
	ErrorStatus(ctx context.Context, storeID string) (*dto.ErrorStatusResponse, error)
	AuditLog(ctx context.Context, storeID string, page dto.PageRequest) ([]dto.AuditLogResponse, error)
}

// AvaTaxHandler envío de documentos a AvaTax y estado por tienda (protegido).
type AvaTaxHandler struct {
	submissions SubmissionService
	status      StatusService
	validate    *validator.Validate
}

// NewAvaTaxHandler construye el handler.
func NewAvaTaxHandler(submissions SubmissionService, status StatusService) *AvaTaxHandler {
	return &AvaTaxHandler{submissions: submissions, status: status, validate: validator.New()}
}

// SubmitInvoice godoc
// @Summary      Enviar factura a AvaTax
// @Tags         avatax
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.SubmissionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.SubmissionErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.SubmissionErrorResponse
// @Router       /api/invoices/{id}/avatax [post]
func (h *AvaTaxHandler) SubmitInvoice(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	resp, err := h.submissions.SubmitInvoice(c.Context(), GetStoreID(c), id)
	return submissionResult(c, resp, err)
}

// SubmitCreditMemo godoc
// @Summary      Enviar nota crédito a AvaTax
// @Tags         avatax
// @Produce      json
// @Param        id   path      string  true  "ID de la nota crédito"
// @Success      200  {object}  dto.SubmissionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.SubmissionErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.SubmissionErrorResponse
// @Router       /api/creditmemos/{id}/avatax [post]
func (h *AvaTaxHandler) SubmitCreditMemo(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	resp, err := h.submissions.SubmitCreditMemo(c.Context(), GetStoreID(c), id)
	return submissionResult(c, resp, err)
}

func submissionResult(c *fiber.Ctx, resp *dto.SubmissionResponse, err error) error {
	if err == nil {
		return c.JSON(resp)
	}
	switch {
	case errors.Is(err, domain.ErrUnbalanced):
		return c.Status(fiber.StatusConflict).JSON(dto.SubmissionErrorResponse{Code: "UNBALANCED", Message: err.Error(), Submission: resp})
	case errors.Is(err, domain.ErrCommitFailure):
		return c.Status(fiber.StatusBadGateway).JSON(dto.SubmissionErrorResponse{Code: "COMMIT_FAILURE", Message: err.Error(), Submission: resp})
	}
	return errorResponse(c, err)
}

// Ping godoc
// @Summary      Verificar credenciales AvaTax de la tienda
// @Tags         avatax
// @Produce      json
// @Param        id   path      string  true  "ID de la tienda"
// @Success      200  {object}  dto.PingResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/avatax/ping [get]
func (h *AvaTaxHandler) Ping(c *fiber.Ctx) error {
	resp, err := h.status.Ping(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// ErrorStatus godoc
// @Summary      Estado de la bandera de error de la tienda
// @Tags         avatax
// @Produce      json
// @Param        id   path      string  true  "ID de la tienda"
// @Success      200  {object}  dto.ErrorStatusResponse
// @Router       /api/stores/{id}/avatax/status [get]
func (h *AvaTaxHandler) ErrorStatus(c *fiber.Ctx) error {
	resp, err := h.status.ErrorStatus(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// AuditLog godoc
// @Summary      Log de auditoría AvaTax de la tienda
// @Tags         avatax
// @Produce      json
// @Param        id      path   string  true   "ID de la tienda"
// @Param        limit   query  int     false  "1 a 100, por defecto 20"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.AuditLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/avatax/log [get]
func (h *AvaTaxHandler) AuditLog(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	if err := h.validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit entre 1 y 100, offset >= 0"})
	}
	entries, err := h.status.AuditLog(c.Context(), c.Params("id"), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"items": entries,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// errorResponse traduce los errores de dominio a HTTP.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNoAddress):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_ADDRESS", Message: err.Error()})
	case errors.Is(err, domain.ErrStoreNotConfigured):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "STORE_NOT_CONFIGURED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
