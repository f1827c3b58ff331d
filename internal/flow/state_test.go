package flow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_DefaultIdle(t *testing.T) {
	s := NewSessions()

	assert.Equal(t, Idle(), s.Get(1))
	assert.Equal(t, 0, s.Len())
}

func TestSessions_SetAndReset(t *testing.T) {
	s := NewSessions()

	s.Set(1, ProductDetail(2, 5))
	assert.Equal(t, State{Kind: StateProductDetail, CategoryID: 2, ProductID: 5}, s.Get(1))
	assert.Equal(t, 1, s.Len())

	s.Set(1, Idle())
	assert.Equal(t, 0, s.Len())

	s.Set(1, AwaitingPhone())
	s.Reset(1)
	assert.Equal(t, StateIdle, s.Get(1).Kind)
	assert.Equal(t, 0, s.Len())
}

func TestState_PendingPhone(t *testing.T) {
	phone, ok := AwaitingPayment("+998901234567").PendingPhone()
	require.True(t, ok)
	assert.Equal(t, "+998901234567", phone)

	for _, st := range []State{Idle(), AwaitingPhone(), CartView(), BrowsingProducts(1)} {
		_, ok := st.PendingPhone()
		assert.False(t, ok, st.Kind.String())
	}
}

func TestStateKindString(t *testing.T) {
	assert.Equal(t, "awaiting_payment", StateAwaitingPayment.String())
	assert.Equal(t, "state(99)", StateKind(99).String())
}

func TestSessions_Concurrent(t *testing.T) {
	s := NewSessions()

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Set(id, BrowsingProducts(id))
			_ = s.Get(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Equal(t, BrowsingProducts(7), s.Get(7))
}
