package budgetwatch

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

type recordingObserver struct {
	name    string
	created []string
	updated []string
	deleted []string
	log     *[]string
}

func (r *recordingObserver) Name() string { return r.name }

func (r *recordingObserver) OnTransactionCreated(_ context.Context, _ string, txn *domain.Transaction) {
	r.created = append(r.created, txn.TransactionID)
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

func (r *recordingObserver) OnTransactionUpdated(_ context.Context, _ string, txn *domain.Transaction) {
	r.updated = append(r.updated, txn.TransactionID)
}

func (r *recordingObserver) OnTransactionDeleted(_ context.Context, _ string, txn *domain.Transaction) {
	r.deleted = append(r.deleted, txn.TransactionID)
}

func sampleTxn(id string) *domain.Transaction {
	cat := "cat_groceries"
	return &domain.Transaction{
		TransactionID:   id,
		AccountID:       "acc-1",
		Amount:          decimal.NewFromInt(-25),
		CategoryID:      &cat,
		TransactionDate: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestBroadcaster_AttachIsIdempotent(t *testing.T) {
	b := NewBroadcaster()
	obs := &recordingObserver{name: "first"}

	b.Attach(obs)
	b.Attach(obs)

	b.NotifyCreated(context.Background(), "user-1", sampleTxn("txn-1"))

	assert.Len(t, obs.created, 1, "double attach must not double-notify")
}

func TestBroadcaster_NotifiesInAttachmentOrder(t *testing.T) {
	b := NewBroadcaster()
	var order []string
	first := &recordingObserver{name: "first", log: &order}
	second := &recordingObserver{name: "second", log: &order}
	third := &recordingObserver{name: "third", log: &order}

	b.Attach(first)
	b.Attach(second)
	b.Attach(third)
	// Re-attaching an earlier observer keeps its original slot.
	b.Attach(first)

	b.NotifyCreated(context.Background(), "user-1", sampleTxn("txn-1"))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBroadcaster_DetachStopsNotifications(t *testing.T) {
	b := NewBroadcaster()
	kept := &recordingObserver{name: "kept"}
	dropped := &recordingObserver{name: "dropped"}

	b.Attach(kept)
	b.Attach(dropped)
	b.Detach(dropped)

	b.NotifyCreated(context.Background(), "user-1", sampleTxn("txn-1"))
	b.NotifyUpdated(context.Background(), "user-1", sampleTxn("txn-2"))
	b.NotifyDeleted(context.Background(), "user-1", sampleTxn("txn-3"))

	assert.Len(t, kept.created, 1)
	assert.Len(t, kept.updated, 1)
	assert.Len(t, kept.deleted, 1)
	assert.Empty(t, dropped.created)
	assert.Empty(t, dropped.updated)
	assert.Empty(t, dropped.deleted)
}

func TestBroadcaster_DetachUnattachedIsNoOp(t *testing.T) {
	b := NewBroadcaster()
	attached := &recordingObserver{name: "attached"}
	stranger := &recordingObserver{name: "stranger"}

	b.Attach(attached)

	assert.NotPanics(t, func() { b.Detach(stranger) })

	b.NotifyCreated(context.Background(), "user-1", sampleTxn("txn-1"))
	assert.Len(t, attached.created, 1)
}

func TestBroadcaster_AttachNilIsIgnored(t *testing.T) {
	b := NewBroadcaster()
	b.Attach(nil)

	assert.NotPanics(t, func() {
		b.NotifyCreated(context.Background(), "user-1", sampleTxn("txn-1"))
	})
}
