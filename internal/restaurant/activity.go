package restaurant

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/comandaclub/comanda/pkg"
)

// DefaultActivityCapacity bounds the in-memory activity feed.
const DefaultActivityCapacity = 100

// ActivityEntry is one observed domain event, kept newest first.
type ActivityEntry struct {
	ID          uuid.UUID `json:"id"`
	EventType   string    `json:"event_type"`
	TableNumber string    `json:"table_number,omitempty"`
	Status      string    `json:"status,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e *ActivityEntry) GetID() uuid.UUID {
	return e.ID
}

func (e *ActivityEntry) ResourceType() string {
	return "activity"
}

func (e *ActivityEntry) SetID(id uuid.UUID) {
	e.ID = id
}

// ActivityFeed consumes the service's own events and keeps a bounded
// log of recent activity for the front of house.
type ActivityFeed struct {
	subscriber events.Subscriber
	logger     apt.Logger

	mu       sync.RWMutex
	entries  []*ActivityEntry
	capacity int
}

func NewActivityFeed(subscriber events.Subscriber, capacity int, logger apt.Logger) *ActivityFeed {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &ActivityFeed{
		subscriber: subscriber,
		logger:     logger,
		capacity:   capacity,
	}
}

// Start subscribes the feed to every domain topic.
func (f *ActivityFeed) Start(ctx context.Context) error {
	subscriptions := []struct {
		topic   string
		handler events.HandlerFunc
	}{
		{pkg.TableStatusTopic, f.handleTableEvent},
		{pkg.OrderStatusTopic, f.handleOrderEvent},
		{pkg.BillPaidTopic, f.handleBillEvent},
	}

	for _, sub := range subscriptions {
		if err := f.subscriber.Subscribe(ctx, sub.topic, sub.handler); err != nil {
			return fmt.Errorf("cannot subscribe to %s: %w", sub.topic, err)
		}
	}

	f.logger.Info("Activity feed started", "topics", len(subscriptions))
	return nil
}

// Recent returns a copy of the feed, newest entry first.
func (f *ActivityFeed) Recent() []*ActivityEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries := make([]*ActivityEntry, len(f.entries))
	copy(entries, f.entries)
	return entries
}

func (f *ActivityFeed) handleTableEvent(ctx context.Context, msg []byte) error {
	var evt pkg.TableStatusEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		f.logger.Errorf("Cannot decode table event: %v", err)
		return nil
	}

	f.record(&ActivityEntry{
		EventType:   evt.EventType,
		TableNumber: evt.TableNumber,
		Status:      evt.Status,
		Detail:      evt.Reason,
		OccurredAt:  evt.OccurredAt,
	})
	return nil
}

func (f *ActivityFeed) handleOrderEvent(ctx context.Context, msg []byte) error {
	var evt pkg.OrderStatusEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		f.logger.Errorf("Cannot decode order event: %v", err)
		return nil
	}

	f.record(&ActivityEntry{
		EventType:   evt.EventType,
		TableNumber: evt.TableNumber,
		Status:      evt.Status,
		Detail:      fmt.Sprintf("order %s", evt.OrderID),
		OccurredAt:  evt.OccurredAt,
	})
	return nil
}

func (f *ActivityFeed) handleBillEvent(ctx context.Context, msg []byte) error {
	var evt pkg.BillPaidEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		f.logger.Errorf("Cannot decode bill event: %v", err)
		return nil
	}

	f.record(&ActivityEntry{
		EventType:   evt.EventType,
		TableNumber: evt.TableNumber,
		Status:      PaymentPaid,
		Detail:      fmt.Sprintf("bill %s settled %.2f via %s", evt.BillID, evt.Total, evt.PaymentMethod),
		OccurredAt:  evt.OccurredAt,
	})
	return nil
}

func (f *ActivityFeed) record(entry *ActivityEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = apt.GenerateNewID()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append([]*ActivityEntry{entry}, f.entries...)
	if len(f.entries) > f.capacity {
		f.entries = f.entries[:f.capacity]
	}
}
