package funds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankTransfer(t *testing.T) {
	b := NewBank("escrow")
	b.Deposit("alice", 100)

	require.NoError(t, b.Transfer("alice", "bob", 60))
	assert.Equal(t, uint64(40), b.Balance("alice"))
	assert.Equal(t, uint64(60), b.Balance("bob"))

	err := b.Transfer("alice", "bob", 41)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, uint64(40), b.Balance("alice"))
	assert.Equal(t, uint64(60), b.Balance("bob"))
}

func TestBankRefundDrawsFromEscrow(t *testing.T) {
	b := NewBank("escrow")
	b.Deposit("escrow", 100)

	require.NoError(t, b.Refund("alice", 30))
	assert.Equal(t, uint64(70), b.Balance("escrow"))
	assert.Equal(t, uint64(30), b.Balance("alice"))

	err := b.Refund("alice", 71)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestBankRejectsBalanceOverflow(t *testing.T) {
	b := NewBank("escrow")
	b.Deposit("alice", 10)
	b.Deposit("bob", math.MaxUint64-5)

	err := b.Transfer("alice", "bob", 10)
	assert.ErrorIs(t, err, ErrBalanceOverflow)
	assert.Equal(t, uint64(10), b.Balance("alice"), "failed move touches neither side")
}

func TestBankUnknownAccountIsEmpty(t *testing.T) {
	b := NewBank("escrow")

	assert.Equal(t, uint64(0), b.Balance("nobody"))
	err := b.Transfer("nobody", "alice", 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}
