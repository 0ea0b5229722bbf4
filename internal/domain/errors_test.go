package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/avatax-connector/internal/domain"
)

func TestUnbalancedError_EsErrUnbalanced(t *testing.T) {
	err := fmt.Errorf("factura 100000001: %w", &domain.UnbalancedError{
		DocumentCode: "100000001",
		Collected:    decimal.RequireFromString("10.00"),
		Actual:       decimal.RequireFromString("10.01"),
	})

	assert.ErrorIs(t, err, domain.ErrUnbalanced)
	assert.NotErrorIs(t, err, domain.ErrCommitFailure)

	var ue *domain.UnbalancedError
	assert.True(t, errors.As(err, &ue))
	assert.Contains(t, err.Error(), "recaudado: 10")
	assert.Contains(t, err.Error(), "real: 10.01")
}

func TestCommitFailureError_ConservaMensajes(t *testing.T) {
	err := &domain.CommitFailureError{
		DocumentCode: "100000002",
		ResultCode:   "Error",
		Messages:     []string{"CompanyCode inválido", "Dirección no resoluble"},
	}

	assert.ErrorIs(t, err, domain.ErrCommitFailure)
	assert.Contains(t, err.Error(), "CompanyCode inválido; Dirección no resoluble")
	assert.Contains(t, err.Error(), "[Error]")
}

func TestCommitFailureError_SinMensajes(t *testing.T) {
	err := &domain.CommitFailureError{DocumentCode: "X", ResultCode: "Exception"}
	assert.Contains(t, err.Error(), "sin detalle")
}
