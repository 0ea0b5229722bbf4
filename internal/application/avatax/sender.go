package avatax

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
	"github.com/jhoicas/avatax-connector/internal/domain/tax"
	pkgavatax "github.com/jhoicas/avatax-connector/pkg/avatax"
	"github.com/jhoicas/avatax-connector/pkg/logger"
)

// Sender envía el documento a AvaTax. Nunca propaga errores de transporte: todo
// termina en un SubmissionResult, en el log de auditoría y en la bandera de error.
type Sender struct {
	transport Transport
	audit     repository.AuditLogRepository
	flags     repository.ErrorFlagStore
	metrics   Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewSender construye el adaptador de envío. metrics puede ser nil.
func NewSender(transport Transport, audit repository.AuditLogRepository, flags repository.ErrorFlagStore, metrics Metrics, log *logger.Logger) *Sender {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Sender{transport: transport, audit: audit, flags: flags, metrics: metrics, log: log, now: time.Now}
}

// Send llama a CreateTransaction y normaliza el resultado.
func (s *Sender) Send(ctx context.Context, kind string, cfg *entity.StoreConfig, doc *tax.Document) *tax.SubmissionResult {
	start := s.now()
	res, err := s.transport.CreateTransaction(ctx, credentialsOf(cfg), doc)
	if err != nil || res == nil {
		res = tax.ExceptionResult(err)
		res.DocumentCode = doc.Header.DocumentCode
	}
	if res.DocumentCode == "" {
		res.DocumentCode = doc.Header.DocumentCode
	}
	s.metrics.ObserveSubmission(kind, res.ResultCode, s.now().Sub(start))

	level := pkgavatax.LogLevelSuccess
	if res.HasError {
		level = pkgavatax.LogLevelError
	}
	s.writeAudit(ctx, pkgavatax.LogCategoryTransaction, level, cfg, doc.Header.DocumentCode, doc, res)

	switch {
	case res.HasError && cfg.FullStopOnError:
		if err := s.flags.Raise(ctx, cfg.StoreID); err != nil {
			s.log.Error().Err(err).Str("store_id", cfg.StoreID).Msg("no se pudo levantar la bandera de error")
		} else {
			s.metrics.SetErrorFlag(cfg.StoreID, true)
			s.log.Warn().Str("store_id", cfg.StoreID).Str("document_code", res.DocumentCode).Msg("bandera de error levantada")
		}
	case !res.HasError:
		cleared, err := s.flags.Clear(ctx, cfg.StoreID)
		if err != nil {
			s.log.Error().Err(err).Str("store_id", cfg.StoreID).Msg("no se pudo limpiar la bandera de error")
		} else if cleared {
			s.metrics.SetErrorFlag(cfg.StoreID, false)
			s.log.Info().Str("store_id", cfg.StoreID).Msg("bandera de error limpiada")
		}
	}

	s.log.Debug().
		Str("store_id", cfg.StoreID).
		Str("document_code", res.DocumentCode).
		Str("result_code", res.ResultCode).
		Int("lines", len(doc.Lines)).
		Msg("documento enviado a AvaTax")
	return res
}

// writeAudit persiste la entrada de auditoría. Un fallo se registra pero no interrumpe el flujo.
func (s *Sender) writeAudit(ctx context.Context, category, level string, cfg *entity.StoreConfig, documentCode string, request, result any) {
	entry := &entity.AuditLog{
		ID:             uuid.New().String(),
		StoreID:        cfg.StoreID,
		Category:       category,
		Level:          level,
		DocumentCode:   documentCode,
		Request:        mustJSON(request),
		Result:         mustJSON(result),
		ConfigSnapshot: mustJSON(cfg.Snapshot()),
		CreatedAt:      s.now(),
	}
	if err := s.audit.Save(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("store_id", cfg.StoreID).Str("category", category).Msg("no se pudo guardar el log de auditoría")
	}
}

func credentialsOf(cfg *entity.StoreConfig) tax.Credentials {
	return tax.Credentials{ServiceURL: cfg.ServiceURL, AccountID: cfg.AccountID, LicenseKey: cfg.LicenseKey}
}

func mustJSON(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{"marshal_error":true}`)
	}
	return b
}
