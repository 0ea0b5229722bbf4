package avatax

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/avatax-connector/internal/application/dto"
	"github.com/jhoicas/avatax-connector/internal/domain"
	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
	"github.com/jhoicas/avatax-connector/internal/domain/tax"
	"github.com/jhoicas/avatax-connector/pkg/logger"
)

// SubmissionDeps dependencias del caso de uso de envío.
type SubmissionDeps struct {
	Invoices    repository.InvoiceRepository
	CreditMemos repository.CreditMemoRepository
	Orders      repository.OrderRepository
	Configs     *ConfigResolver
	Assembler   *Assembler
	Sender      *Sender
	Reconciler  *Reconciler
	Log         *logger.Logger
}

// SubmissionUseCase envía facturas y notas crédito a AvaTax:
//
//	cargar documento → Assembler → Sender → Reconciler
//
// Una llamada síncrona por documento, sin reintentos.
type SubmissionUseCase struct {
	deps SubmissionDeps
}

// NewSubmissionUseCase construye el caso de uso.
func NewSubmissionUseCase(deps SubmissionDeps) *SubmissionUseCase {
	return &SubmissionUseCase{deps: deps}
}

// SubmitInvoice envía la factura. Si AvaTax rechaza el documento o el impuesto no cuadra,
// devuelve la respuesta junto con *domain.CommitFailureError o *domain.UnbalancedError.
// storeScope no vacío limita el envío a documentos de esa tienda (domain.ErrForbidden).
func (uc *SubmissionUseCase) SubmitInvoice(ctx context.Context, storeScope, invoiceID string) (*dto.SubmissionResponse, error) {
	inv, err := uc.deps.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("factura %s: %w", invoiceID, domain.ErrNotFound)
	}
	return uc.submit(ctx, storeScope, newInvoiceHandler(inv))
}

// SubmitCreditMemo envía la nota crédito (ReturnInvoice, montos negativos).
func (uc *SubmissionUseCase) SubmitCreditMemo(ctx context.Context, storeScope, creditMemoID string) (*dto.SubmissionResponse, error) {
	memo, err := uc.deps.CreditMemos.GetByID(ctx, creditMemoID)
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, fmt.Errorf("nota crédito %s: %w", creditMemoID, domain.ErrNotFound)
	}
	return uc.submit(ctx, storeScope, newCreditMemoHandler(memo))
}

// Submit despacha por tipo de documento (usado por el consumidor de eventos, sin alcance de tienda).
func (uc *SubmissionUseCase) Submit(ctx context.Context, documentType, documentID string) (*dto.SubmissionResponse, error) {
	switch documentType {
	case entity.DocumentTypeInvoice:
		return uc.SubmitInvoice(ctx, "", documentID)
	case entity.DocumentTypeCreditMemo:
		return uc.SubmitCreditMemo(ctx, "", documentID)
	default:
		return nil, fmt.Errorf("tipo de documento %q: %w", documentType, domain.ErrInvalidInput)
	}
}

func (uc *SubmissionUseCase) submit(ctx context.Context, storeScope string, h transactionHandler) (*dto.SubmissionResponse, error) {
	src := h.document()
	if storeScope != "" && storeScope != src.StoreID {
		return nil, fmt.Errorf("documento %s de la tienda %s: %w", src.IncrementID, src.StoreID, domain.ErrForbidden)
	}
	log := uc.deps.Log.With().Str("store_id", src.StoreID).Str("document_code", src.IncrementID).Str("kind", h.kind()).Logger()

	order, err := uc.deps.Orders.GetByID(ctx, src.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", src.OrderID, domain.ErrNotFound)
	}
	cfg, err := uc.deps.Configs.Resolve(ctx, src.StoreID)
	if err != nil {
		return nil, err
	}

	doc, index, err := uc.deps.Assembler.Assemble(ctx, h, order, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo ensamblar el documento")
		return nil, err
	}

	res := uc.deps.Sender.Send(ctx, h.kind(), cfg, doc)
	resp := toSubmissionResponse(h, doc, index, res)

	if err := uc.deps.Reconciler.Reconcile(ctx, h, order, cfg, res); err != nil {
		var unbalanced *domain.UnbalancedError
		if errors.As(err, &unbalanced) {
			log.Warn().Str("collected", unbalanced.Collected.String()).Str("actual", unbalanced.Actual.String()).Msg("impuesto descuadrado")
		} else {
			log.Error().Err(err).Str("result_code", res.ResultCode).Msg("AvaTax rechazó el documento")
		}
		return resp, err
	}
	resp.Balanced = true
	log.Info().Str("total_tax", res.TotalTax.String()).Msg("documento registrado en AvaTax")
	return resp, nil
}

func toSubmissionResponse(h transactionHandler, doc *tax.Document, index tax.LineIndex, res *tax.SubmissionResult) *dto.SubmissionResponse {
	src := h.document()
	return &dto.SubmissionResponse{
		DocumentType: h.kind(),
		DocumentID:   src.ID,
		DocumentCode: doc.Header.DocumentCode,
		StoreID:      src.StoreID,
		ResultCode:   res.ResultCode,
		TotalTax:     res.TotalTax,
		ExpectedTax:  h.expectedTax(),
		LineCount:    len(doc.Lines),
		LineIndex:    index,
		Messages:     res.ErrorMessages(),
	}
}
