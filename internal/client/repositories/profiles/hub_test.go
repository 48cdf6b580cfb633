package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

func recv(t *testing.T, ch <-chan *models.PartnerProfile) (*models.PartnerProfile, bool) {
	t.Helper()
	select {
	case p, ok := <-ch:
		return p, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for profile")
		return nil, false
	}
}

func TestHub_InitialThenPublished(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, alice())

	p, ok := recv(t, ch)
	require.True(t, ok)
	assert.Equal(t, alice(), p)

	h.Publish(nil)
	p, ok = recv(t, ch)
	require.True(t, ok)
	assert.Nil(t, p)
}

func TestHub_SlowReaderGetsLatest(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, nil)

	first := alice()
	second := alice()
	second.Verified = true
	h.Publish(first)
	h.Publish(second)

	p, ok := recv(t, ch)
	require.True(t, ok)
	assert.True(t, p.Verified)
}

func TestHub_PublishedValueIsACopy(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, nil)
	<-ch

	p := alice()
	h.Publish(p)
	p.Name = "mutated"

	got, _ := recv(t, ch)
	assert.Equal(t, "Alice", got.Name)
}

func TestHub_CancelClosesAndUnsubscribes(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	ch := h.Subscribe(ctx, nil)
	require.Equal(t, 1, h.Subscribers())
	<-ch

	cancel()
	_, ok := recv(t, ch)
	assert.False(t, ok)
	assert.Eventually(t, func() bool { return h.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	h.Publish(alice())
}
