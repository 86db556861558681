package notify

import (
	"sync"
	"time"
)

// Kind discriminates the state changes the marketplace announces.
type Kind string

const (
	KindTicketMinted     Kind = "TICKET_MINTED"
	KindTicketListed     Kind = "TICKET_LISTED"
	KindListingCancelled Kind = "LISTING_CANCELLED"
	KindTicketResold     Kind = "TICKET_RESOLD"
)

// Notification describes one committed state change. Every field a downstream
// consumer needs to reconstruct the change travels with it; Seq is assigned
// by the log and increases by exactly one per committed transaction.
type Notification struct {
	Seq          uint64    `json:"seq"`
	Kind         Kind      `json:"kind"`
	EventID      int64     `json:"event_id"`
	TokenIndex   uint64    `json:"token_index"`
	Actor        string    `json:"actor"`
	Counterparty string    `json:"counterparty,omitempty"`
	Amount       uint64    `json:"amount"`
	At           time.Time `json:"at"`
}

// Log is the durable ordered notification sequence. Entries are appended only
// for committed transactions, so a consumer replaying from any sequence
// number sees every change exactly once, in commit order.
type Log struct {
	mu      sync.Mutex
	seq     uint64
	entries []Notification
	subs    map[int]chan Notification
	nextSub int
}

func NewLog() *Log {
	return &Log{subs: map[int]chan Notification{}}
}

// Append commits a notification, assigning it the next sequence number, and
// fans it out to subscribers. A subscriber whose buffer is full is skipped;
// it can recover the gap through Entries.
func (l *Log) Append(n Notification) Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	n.Seq = l.seq
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	l.entries = append(l.entries, n)

	for _, ch := range l.subs {
		select {
		case ch <- n:
		default:
		}
	}

	return n
}

// Entries returns every committed notification with Seq > afterSeq.
func (l *Log) Entries(afterSeq uint64) []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	if afterSeq >= l.seq {
		return nil
	}
	out := make([]Notification, l.seq-afterSeq)
	copy(out, l.entries[afterSeq:])
	return out
}

// LastSeq returns the sequence number of the most recent committed entry.
func (l *Log) LastSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Subscribe registers a live feed of committed notifications. The returned
// cancel func releases the subscription and closes the channel.
func (l *Log) Subscribe(buffer int) (<-chan Notification, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	ch := make(chan Notification, buffer)
	l.subs[id] = ch

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
