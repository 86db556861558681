package marketplace

import (
	"reselit-marketplace-backend/funds"
	"reselit-marketplace-backend/notify"
)

// Market wires the four marketplace components around a shared funds mover
// and notification log. The registry owns event records, the ledger owns
// holder records, and the two engines are the only writers to either.
type Market struct {
	Registry *Registry
	Ledger   *Ledger
	Issuance *Issuance
	Resale   *Resale
}

func New(bank funds.Mover, log *notify.Log, escrowAccount string) *Market {
	registry := NewRegistry()
	ledger := NewLedger()

	return &Market{
		Registry: registry,
		Ledger:   ledger,
		Issuance: NewIssuance(registry, ledger, bank, log, escrowAccount),
		Resale:   NewResale(registry, ledger, bank, log, escrowAccount),
	}
}
