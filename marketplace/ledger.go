package marketplace

import (
	"fmt"
	"sync"
)

// Ledger maps (event, token index) to the current holder. It is the single
// source of truth for ownership: the issuance engine writes through Mint, the
// resale engine through Transfer, and nothing mutates holder records directly.
type Ledger struct {
	mu      sync.RWMutex
	holders map[EventID]map[uint64]string
}

func NewLedger() *Ledger {
	return &Ledger{holders: map[EventID]map[uint64]string{}}
}

// Mint creates the holder record for a freshly issued token.
func (l *Ledger) Mint(eventID EventID, tokenIndex uint64, holder string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tokens, ok := l.holders[eventID]
	if !ok {
		tokens = map[uint64]string{}
		l.holders[eventID] = tokens
	}
	if _, exists := tokens[tokenIndex]; exists {
		return fmt.Errorf("mint: event %d token %d: %w", eventID, tokenIndex, ErrDuplicateToken)
	}
	tokens[tokenIndex] = holder

	return nil
}

// Transfer reassigns the holder of a minted token. The current holder must
// equal from; the reassignment is a single atomic step.
func (l *Ledger) Transfer(eventID EventID, tokenIndex uint64, from, to string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	holder, ok := l.holders[eventID][tokenIndex]
	if !ok {
		return fmt.Errorf("transfer: event %d token %d: %w", eventID, tokenIndex, ErrTokenNotFound)
	}
	if holder != from {
		return fmt.Errorf("transfer: event %d token %d held by %s, not %s: %w", eventID, tokenIndex, holder, from, ErrNotHolder)
	}
	l.holders[eventID][tokenIndex] = to

	return nil
}

// HolderOf returns the current holder of a minted token.
func (l *Ledger) HolderOf(eventID EventID, tokenIndex uint64) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	holder, ok := l.holders[eventID][tokenIndex]
	if !ok {
		return "", fmt.Errorf("holderOf: event %d token %d: %w", eventID, tokenIndex, ErrTokenNotFound)
	}
	return holder, nil
}

// burn removes a holder record staged by Mint in a transaction that failed
// after the mint step. Rollback path only, never part of the public contract.
func (l *Ledger) burn(eventID EventID, tokenIndex uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.holders[eventID], tokenIndex)
}
