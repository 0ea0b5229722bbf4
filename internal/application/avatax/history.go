package avatax

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
)

// Variantes del historial según la versión de la plataforma.
const (
	HistoryModern = "modern" // comentario sin cambio de estado
	HistoryLegacy = "legacy" // comentario que repite el estado actual
	HistoryNone   = "none"   // la plataforma no tiene historial
)

// NewHistoryAppender elige una vez, al arrancar, cómo se escribe el historial.
// Versión vacía o >= 1.4 usa la variante moderna; 1.0 a 1.3 la legacy; el resto no escribe nada.
func NewHistoryAppender(platformVersion string, repo repository.OrderHistoryRepository) (HistoryAppender, string) {
	variant := historyVariant(platformVersion)
	switch variant {
	case HistoryModern:
		return modernHistory{repo: repo}, variant
	case HistoryLegacy:
		return legacyHistory{repo: repo}, variant
	default:
		return noopHistory{}, variant
	}
}

func historyVariant(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return HistoryModern
	}
	parts := strings.SplitN(version, ".", 3)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return HistoryNone
	}
	minor := 0
	if len(parts) > 1 {
		if minor, err = strconv.Atoi(parts[1]); err != nil {
			return HistoryNone
		}
	}
	switch {
	case major > 1 || (major == 1 && minor >= 4):
		return HistoryModern
	case major == 1:
		return HistoryLegacy
	default:
		return HistoryNone
	}
}

type modernHistory struct {
	repo repository.OrderHistoryRepository
}

func (h modernHistory) Append(ctx context.Context, order *entity.Order, comment string) error {
	return h.repo.Insert(ctx, &entity.StatusHistory{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Comment:   comment,
		CreatedAt: time.Now(),
	})
}

type legacyHistory struct {
	repo repository.OrderHistoryRepository
}

func (h legacyHistory) Append(ctx context.Context, order *entity.Order, comment string) error {
	return h.repo.Insert(ctx, &entity.StatusHistory{
		ID:                 uuid.New().String(),
		OrderID:            order.ID,
		Status:             order.Status,
		Comment:            comment,
		IsCustomerNotified: false,
		CreatedAt:          time.Now(),
	})
}

type noopHistory struct{}

func (noopHistory) Append(context.Context, *entity.Order, string) error { return nil }
