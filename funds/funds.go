package funds

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("balance overflow")
)

// Mover is the external currency primitive the marketplace orchestrates.
// Both operations succeed or fail atomically; there is no partial transfer.
// Refund pays out of the escrow account the implementation custodies.
type Mover interface {
	Transfer(from, to string, amount uint64) error
	Refund(to string, amount uint64) error
}

// Bank is an in-process Mover holding account balances in memory. Accounts
// spring into existence at zero; the escrow account named at construction is
// the source of refunds.
type Bank struct {
	mu       sync.Mutex
	escrow   string
	balances map[string]uint64
}

func NewBank(escrowAccount string) *Bank {
	return &Bank{
		escrow:   escrowAccount,
		balances: map[string]uint64{},
	}
}

// Deposit credits an account directly. Boundary and test seeding only.
func (b *Bank) Deposit(account string, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[account] += amount
}

// Balance returns the current balance of an account.
func (b *Bank) Balance(account string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account]
}

func (b *Bank) Transfer(from, to string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.move(from, to, amount)
}

func (b *Bank) Refund(to string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.move(b.escrow, to, amount)
}

// move debits and credits under the held lock, rejecting rather than wrapping
// on either side of the arithmetic.
func (b *Bank) move(from, to string, amount uint64) error {
	if b.balances[from] < amount {
		return fmt.Errorf("move: %s holds %d, needs %d: %w", from, b.balances[from], amount, ErrInsufficientFunds)
	}
	if b.balances[to] > math.MaxUint64-amount {
		return fmt.Errorf("move: crediting %d to %s: %w", amount, to, ErrBalanceOverflow)
	}
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}
