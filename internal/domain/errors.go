package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNoAddress          = errors.New("no hay dirección asociada a la orden")
	ErrStoreNotConfigured = errors.New("tienda sin configuración AvaTax")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")

	// ErrCommitFailure: el WS AvaTax falló o devolvió errores; el documento no quedó guardado.
	ErrCommitFailure = errors.New("AvaTax no guardó el documento")
	// ErrUnbalanced: el WS respondió OK pero el impuesto calculado no coincide con el registrado.
	ErrUnbalanced = errors.New("impuesto descuadrado")
)

// UnbalancedError lleva ambos valores del descuadre para conciliación manual.
type UnbalancedError struct {
	DocumentCode string
	Collected    decimal.Decimal // impuesto registrado localmente
	Actual       decimal.Decimal // impuesto total calculado por AvaTax
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%s: documento %s, recaudado: %s, real: %s",
		ErrUnbalanced.Error(), e.DocumentCode, e.Collected.String(), e.Actual.String())
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalanced }

// CommitFailureError conserva el payload de errores devuelto por el servicio.
type CommitFailureError struct {
	DocumentCode string
	ResultCode   string
	Messages     []string
}

func (e *CommitFailureError) Error() string {
	detail := strings.Join(e.Messages, "; ")
	if detail == "" {
		detail = "sin detalle"
	}
	return fmt.Sprintf("%s: documento %s [%s] %s", ErrCommitFailure.Error(), e.DocumentCode, e.ResultCode, detail)
}

func (e *CommitFailureError) Unwrap() error { return ErrCommitFailure }
