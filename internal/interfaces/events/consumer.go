// Package events consumidor NATS de solicitudes de envío a AvaTax.
// Cada mensaje es un dto.SubmissionEvent; si trae Reply se responde con el resultado.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/avatax-connector/internal/application/dto"
	"github.com/jhoicas/avatax-connector/internal/domain"
	"github.com/jhoicas/avatax-connector/pkg/config"
	"github.com/jhoicas/avatax-connector/pkg/logger"
	"github.com/nats-io/nats.go"
)

// Submitter lo implementa *avatax.SubmissionUseCase.
type Submitter interface {
	Submit(ctx context.Context, documentType, documentID string) (*dto.SubmissionResponse, error)
}

// Reply respuesta publicada en msg.Reply.
type Reply struct {
	OK         bool                    `json:"ok"`
	Error      *dto.ErrorResponse      `json:"error,omitempty"`
	Submission *dto.SubmissionResponse `json:"submission,omitempty"`
}

// Consumer procesa eventos de forma secuencial por suscripción.
type Consumer struct {
	submitter Submitter
	validate  *validator.Validate
	timeout   time.Duration
	log       *logger.Logger

	conn *nats.Conn
	sub  *nats.Subscription
}

// NewConsumer construye el consumidor. timeout acota cada envío.
func NewConsumer(submitter Submitter, timeout time.Duration, log *logger.Logger) *Consumer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Consumer{submitter: submitter, validate: validator.New(), timeout: timeout, log: log}
}

// Start conecta a NATS y se suscribe al subject con queue group (un solo consumidor por mensaje).
func (c *Consumer) Start(cfg config.NATSConfig, appName string) error {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(appName),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				c.log.Warn().Err(err).Msg("NATS desconectado")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			c.log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconectado")
		}),
	)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	sub, err := conn.QueueSubscribe(cfg.Subject, cfg.Queue, c.onMessage)
	if err != nil {
		conn.Close()
		return fmt.Errorf("nats subscribe %s: %w", cfg.Subject, err)
	}
	c.conn, c.sub = conn, sub
	c.log.Info().Str("subject", cfg.Subject).Str("queue", cfg.Queue).Msg("consumidor NATS iniciado")
	return nil
}

// Close drena la suscripción pendiente y cierra la conexión.
func (c *Consumer) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
		return fmt.Errorf("nats drain: %w", err)
	}
	return nil
}

func (c *Consumer) onMessage(msg *nats.Msg) {
	reply := c.HandleMessage(msg.Data)
	if msg.Reply == "" {
		return
	}
	data, err := json.Marshal(reply)
	if err != nil {
		c.log.Error().Err(err).Msg("serializar respuesta NATS")
		return
	}
	if err := msg.Respond(data); err != nil {
		c.log.Warn().Err(err).Msg("responder mensaje NATS")
	}
}

// HandleMessage decodifica, valida y envía el documento. Nunca entra en pánico por un payload inválido.
func (c *Consumer) HandleMessage(data []byte) Reply {
	var ev dto.SubmissionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		c.log.Warn().Err(err).Msg("evento con JSON inválido")
		return Reply{Error: &dto.ErrorResponse{Code: "INVALID_BODY", Message: "JSON inválido"}}
	}
	if err := c.validate.Struct(ev); err != nil {
		c.log.Warn().Err(err).Msg("evento inválido")
		return Reply{Error: &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}}
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	log := c.log.With().Str("document_type", ev.DocumentType).Str("document_id", ev.DocumentID).Logger()
	resp, err := c.submitter.Submit(ctx, ev.DocumentType, ev.DocumentID)
	if err != nil {
		log.Warn().Err(err).Msg("envío desde evento falló")
		return Reply{Error: &dto.ErrorResponse{Code: errorCode(err), Message: err.Error()}, Submission: resp}
	}
	log.Info().Str("result_code", resp.ResultCode).Msg("documento enviado desde evento")
	return Reply{OK: true, Submission: resp}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, domain.ErrNoAddress):
		return "NO_ADDRESS"
	case errors.Is(err, domain.ErrStoreNotConfigured):
		return "STORE_NOT_CONFIGURED"
	case errors.Is(err, domain.ErrUnbalanced):
		return "UNBALANCED"
	case errors.Is(err, domain.ErrCommitFailure):
		return "COMMIT_FAILURE"
	}
	return "INTERNAL"
}
