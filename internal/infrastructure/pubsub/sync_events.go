// Package pubsub is an in-process event bus for sync completions. Subscribers
// react to fresh snapshots landing, for example by invalidating cached
// dashboard payloads for the affected workspace.
package pubsub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pulseboard-analytics-core/internal/domain"

	"github.com/rs/zerolog"
)

// SyncEvent announces that one integration finished a sync run and wrote
// fresh snapshots
type SyncEvent struct {
	WorkspaceID string
	Platform    domain.Platform
	Days        int
	CompletedAt time.Time
}

// SyncEventFilter narrows a subscription
type SyncEventFilter struct {
	Platforms   []domain.Platform
	WorkspaceID string
}

// SyncEventChannel is one subscription
type SyncEventChannel struct {
	ID     string
	Filter *SyncEventFilter
	Events chan SyncEvent
	ctx    context.Context
	cancel context.CancelFunc
}

// SyncEventBus fans sync completions out to subscribers. Slow subscribers
// drop events rather than stalling the sync pipeline.
type SyncEventBus struct {
	mu       sync.RWMutex
	channels map[string]*SyncEventChannel
	logger   zerolog.Logger
	nextID   int64
}

// NewSyncEventBus creates an event bus
func NewSyncEventBus(logger zerolog.Logger) *SyncEventBus {
	return &SyncEventBus{
		channels: make(map[string]*SyncEventChannel),
		logger:   logger,
	}
}

// Subscribe creates a subscription that lives until ctx is cancelled
func (b *SyncEventBus) Subscribe(ctx context.Context, filter *SyncEventFilter) *SyncEventChannel {
	subCtx, cancel := context.WithCancel(ctx)

	b.mu.Lock()
	b.nextID++
	channel := &SyncEventChannel{
		ID:     fmt.Sprintf("sub-%d", b.nextID),
		Filter: filter,
		Events: make(chan SyncEvent, 16),
		ctx:    subCtx,
		cancel: cancel,
	}
	b.channels[channel.ID] = channel
	b.mu.Unlock()

	go func() {
		<-subCtx.Done()
		b.Unsubscribe(channel.ID)
	}()

	b.logger.Debug().Str("subscriptionId", channel.ID).Msg("Sync event subscription created")
	return channel
}

// Unsubscribe removes a subscription and closes its channel
func (b *SyncEventBus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channel, ok := b.channels[id]
	if !ok {
		return
	}
	channel.cancel()
	close(channel.Events)
	delete(b.channels, id)
}

// Publish delivers an event to every matching subscriber without blocking
func (b *SyncEventBus) Publish(event SyncEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, channel := range b.channels {
		if !matchesFilter(event, channel.Filter) {
			continue
		}
		select {
		case channel.Events <- event:
		case <-channel.ctx.Done():
		default:
			b.logger.Warn().
				Str("subscriptionId", channel.ID).
				Str("workspaceId", event.WorkspaceID).
				Msg("Subscriber buffer full, dropping sync event")
		}
	}
}

func matchesFilter(event SyncEvent, filter *SyncEventFilter) bool {
	if filter == nil {
		return true
	}
	if filter.WorkspaceID != "" && event.WorkspaceID != filter.WorkspaceID {
		return false
	}
	if len(filter.Platforms) > 0 {
		found := false
		for _, platform := range filter.Platforms {
			if event.Platform == platform {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Subscriptions reports the number of live subscriptions
func (b *SyncEventBus) Subscriptions() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.channels)
}
