package avatax

import (
	"context"

	"github.com/jhoicas/avatax-connector/internal/application/dto"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
	pkgavatax "github.com/jhoicas/avatax-connector/pkg/avatax"
	"github.com/jhoicas/avatax-connector/pkg/i18n"
)

// StatusUseCase verificación de credenciales (ping) y estado de la bandera de error.
type StatusUseCase struct {
	configs   *ConfigResolver
	transport Transport
	sender    *Sender // reutiliza el log de auditoría
	flags     repository.ErrorFlagStore
	audit     repository.AuditLogRepository
	metrics   Metrics
}

// NewStatusUseCase construye el caso de uso. metrics puede ser nil.
func NewStatusUseCase(configs *ConfigResolver, transport Transport, sender *Sender, flags repository.ErrorFlagStore, audit repository.AuditLogRepository, metrics Metrics) *StatusUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &StatusUseCase{configs: configs, transport: transport, sender: sender, flags: flags, audit: audit, metrics: metrics}
}

// Ping verifica las credenciales de la tienda. Los errores de transporte no se propagan:
// quedan en Message con el formato `AvaTax Rest V2 Error: "<motivo>"`.
func (uc *StatusUseCase) Ping(ctx context.Context, storeID string) (*dto.PingResponse, error) {
	cfg, err := uc.configs.Resolve(ctx, storeID)
	if err != nil {
		return nil, err
	}

	out := &dto.PingResponse{StoreID: storeID}
	res, err := uc.transport.Ping(ctx, credentialsOf(cfg))
	switch {
	case err != nil:
		out.Message = i18n.Sprintf(cfg.Locale, i18n.MsgPingFailed, err.Error())
	case res == nil || !res.Authenticated:
		out.Message = i18n.Sprintf(cfg.Locale, i18n.MsgPingFailed, i18n.Sprintf(cfg.Locale, i18n.MsgNotAuthenticated))
	default:
		out.Success = true
	}
	if res != nil {
		out.Version = res.Version
		out.AuthenticationType = res.AuthenticationType
	}
	uc.metrics.IncPing(out.Success)

	level := pkgavatax.LogLevelSuccess
	if !out.Success {
		level = pkgavatax.LogLevelError
	}
	uc.sender.writeAudit(ctx, pkgavatax.LogCategoryPing, level, cfg, "", map[string]string{"service_url": cfg.ServiceURL}, out)
	return out, nil
}

// ErrorStatus indica si la bandera de error de la tienda está levantada.
func (uc *StatusUseCase) ErrorStatus(ctx context.Context, storeID string) (*dto.ErrorStatusResponse, error) {
	raised, err := uc.flags.IsRaised(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &dto.ErrorStatusResponse{StoreID: storeID, Raised: raised}, nil
}

// AuditLog lista las últimas entradas de auditoría de la tienda.
func (uc *StatusUseCase) AuditLog(ctx context.Context, storeID string, page dto.PageRequest) ([]dto.AuditLogResponse, error) {
	page.DefaultPage()
	entries, err := uc.audit.ListByStore(ctx, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditLogResponse{
			ID: e.ID, Category: e.Category, Level: e.Level, DocumentCode: e.DocumentCode, CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
