package profiles

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

// Hub fans committed profile rows out to subscribers. Each subscriber holds
// only the latest row; a slow reader skips intermediate values.
type Hub struct {
	mu   sync.Mutex
	subs map[chan *models.PartnerProfile]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan *models.PartnerProfile]struct{})}
}

// Subscribe registers a subscriber whose channel starts with initial (which
// may be nil for "no row"). The channel is closed when ctx ends.
func (h *Hub) Subscribe(ctx context.Context, initial *models.PartnerProfile) <-chan *models.PartnerProfile {
	ch := make(chan *models.PartnerProfile, 1)
	ch <- initial.Clone()

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

// Publish delivers p to every subscriber, replacing any value not yet read.
func (h *Hub) Publish(p *models.PartnerProfile) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- p.Clone()
	}
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
