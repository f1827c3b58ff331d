package mailbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMailbox_SendAndDrain(t *testing.T) {
	m := New(10)
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, 1, "first"))
	require.NoError(t, m.Send(ctx, 1, "second"))
	require.NoError(t, m.Send(ctx, 2, "other"))
	assert.Equal(t, 2, m.Pending(1))

	msgs := m.Drain(1)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
	assert.NotEmpty(t, msgs[0].ID)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
	assert.Equal(t, int64(1), msgs[0].To)

	assert.Empty(t, m.Drain(1))
	assert.Equal(t, 1, m.Pending(2))
}

func TestMailbox_Full(t *testing.T) {
	m := New(2)
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, 1, "a"))
	require.NoError(t, m.Send(ctx, 1, "b"))
	assert.ErrorIs(t, m.Send(ctx, 1, "c"), ErrMailboxFull)

	m.Drain(1)
	assert.NoError(t, m.Send(ctx, 1, "c"))
}

func TestMailbox_Blocked(t *testing.T) {
	m := New(0)
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, 1, "queued"))
	m.SetBlocked(1, true)

	assert.ErrorIs(t, m.Send(ctx, 1, "hello"), ErrBlocked)
	assert.Empty(t, m.Drain(1))

	m.SetBlocked(1, false)
	assert.NoError(t, m.Send(ctx, 1, "hello"))
}

func TestMailbox_CancelledContext(t *testing.T) {
	m := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, 1, "late"), context.Canceled)
	assert.Equal(t, 0, m.Pending(1))
}

func TestNew_DefaultCapacity(t *testing.T) {
	m := New(-1)
	assert.Equal(t, DefaultCapacity, m.capacity)
}
