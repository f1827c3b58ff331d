package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderbot/pkg/types"
)

func TestActionLock(t *testing.T) {
	var l actionLock

	require.True(t, l.TryAcquire())
	assert.False(t, l.TryAcquire(), "second acquire must fail")

	l.Release()
	assert.True(t, l.TryAcquire(), "acquire after release")
}

func TestUserLocks_PerUser(t *testing.T) {
	var locks userLocks

	a := locks.get(1)
	assert.Same(t, a, locks.get(1))
	assert.NotSame(t, a, locks.get(2))

	require.True(t, a.TryAcquire())
	assert.True(t, locks.get(2).TryAcquire(), "other users are not blocked")
}

// blockingLedger holds CreateOrder until release is closed
type blockingLedger struct {
	Ledger
	entered chan struct{}
	release chan struct{}
}

func (l *blockingLedger) CreateOrder(ctx context.Context, order *types.Order) error {
	close(l.entered)
	<-l.release
	return l.Ledger.CreateOrder(ctx, order)
}

func TestHandle_RefusesOverlappingActions(t *testing.T) {
	h := newHarness(t)
	ledger := &blockingLedger{
		Ledger:  h.store,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	h.flow.ledger = ledger

	h.fillCart(t, customer)
	h.press(t, customer, CallbackConfirmOrder)
	h.text(t, customer, "+998901234567")

	pay, err := ParseCallback(customer, PaymentCallback(types.PaymentCash))
	require.NoError(t, err)

	done := make(chan []Reply)
	go func() {
		done <- h.flow.Handle(context.Background(), pay)
	}()
	<-ledger.entered

	r := single(t, h.press(t, customer, PaymentCallback(types.PaymentCash)))
	assert.Equal(t, textBusy, r.Text)

	other := single(t, h.text(t, User{ID: 99}, MenuInfo))
	assert.Equal(t, textInfo, other.Text, "other users are served meanwhile")

	close(ledger.release)
	first := single(t, <-done)
	assert.Contains(t, first.Text, "Buyurtma qabul qilindi")

	orders, err := h.store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1, "exactly one order")
}
