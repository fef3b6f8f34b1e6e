// Package budgetwatch propagates categorized transactions to budget
// monitors and turns threshold crossings into alerts.
package budgetwatch

import (
	"context"
	"sync"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// Observer is notified of transaction events after the categorization
// pipeline resolves. Notification is synchronous and in attachment order.
type Observer interface {
	// Name identifies the observer in logs.
	Name() string

	// OnTransactionCreated is called once per newly imported transaction.
	OnTransactionCreated(ctx context.Context, ownerUserID string, txn *domain.Transaction)

	// OnTransactionUpdated is called when a transaction changes, e.g. a
	// manual re-categorization.
	OnTransactionUpdated(ctx context.Context, ownerUserID string, txn *domain.Transaction)

	// OnTransactionDeleted is called after a transaction is removed, with the
	// transaction's last persisted state.
	OnTransactionDeleted(ctx context.Context, ownerUserID string, txn *domain.Transaction)
}

// Broadcaster maintains the ordered set of attached observers. It behaves as
// a set with insertion-order iteration: attaching an observer twice has no
// additional effect and notification order stays deterministic.
type Broadcaster struct {
	mu        sync.Mutex
	observers []Observer
	attached  map[Observer]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{attached: make(map[Observer]struct{})}
}

// Attach adds an observer. Idempotent.
func (b *Broadcaster) Attach(o Observer) {
	if o == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.attached[o]; ok {
		return
	}
	b.attached[o] = struct{}{}
	b.observers = append(b.observers, o)
}

// Detach removes an observer. Detaching an unattached observer is a no-op,
// not a failure.
func (b *Broadcaster) Detach(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.attached[o]; !ok {
		return
	}
	delete(b.attached, o)
	for i, existing := range b.observers {
		if existing == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			break
		}
	}
}

// NotifyCreated notifies each attached observer, in attachment order, of a
// newly imported transaction.
func (b *Broadcaster) NotifyCreated(ctx context.Context, ownerUserID string, txn *domain.Transaction) {
	for _, o := range b.snapshot() {
		o.OnTransactionCreated(ctx, ownerUserID, txn)
	}
}

// NotifyUpdated notifies each attached observer of an updated transaction.
func (b *Broadcaster) NotifyUpdated(ctx context.Context, ownerUserID string, txn *domain.Transaction) {
	for _, o := range b.snapshot() {
		o.OnTransactionUpdated(ctx, ownerUserID, txn)
	}
}

// NotifyDeleted notifies each attached observer of a deleted transaction.
func (b *Broadcaster) NotifyDeleted(ctx context.Context, ownerUserID string, txn *domain.Transaction) {
	for _, o := range b.snapshot() {
		o.OnTransactionDeleted(ctx, ownerUserID, txn)
	}
}

func (b *Broadcaster) snapshot() []Observer {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Observer, len(b.observers))
	copy(out, b.observers)
	return out
}
