package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

func TestSettlementStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from domain.SettlementStatus
		to   domain.SettlementStatus
		want bool
	}{
		{domain.StatusReady, domain.StatusDepositDone, true},
		{domain.StatusDepositDone, domain.StatusDone, true},
		{domain.StatusReady, domain.StatusDone, false},
		{domain.StatusDone, domain.StatusReady, false},
		{domain.StatusDone, domain.StatusDepositDone, false},
		{domain.StatusSetoff, domain.StatusDepositDone, false},
		{domain.StatusSetoff, domain.StatusDone, false},
		{domain.StatusReady, domain.StatusSetoff, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSettlementStatus_IsPaid(t *testing.T) {
	assert.False(t, domain.StatusReady.IsPaid())
	assert.False(t, domain.StatusSetoff.IsPaid())
	assert.True(t, domain.StatusDepositDone.IsPaid())
	assert.True(t, domain.StatusDone.IsPaid())
}

func TestSettlementBatch_Amounts(t *testing.T) {
	batch := domain.SettlementBatch{
		SalesPrice:        100000,
		CardCommission:    -3000,
		ServiceCommission: -155,
		Setoff:            -9700,
	}

	assert.Equal(t, int64(87145), batch.NetDeposit())
	assert.Equal(t, int64(87300), batch.CollectibleAmount())
}
