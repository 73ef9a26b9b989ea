package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents an event that occurred in the domain.
// Storefront events are always scoped to a tenant store by slug.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	StoreSlug() string
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Slug      string    `json:"store_slug"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// StoreSlug returns the slug of the store the event belongs to
func (e *BaseDomainEvent) StoreSlug() string {
	return e.Slug
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType, slug string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		Slug:      slug,
	}
}

// Session storage change events. These are the in-process equivalent of the
// browser storage-change signal: any component that persists per-slug state
// publishes one, and presence-sensitive components re-read their state.
const (
	EventTypeSessionTokenStored  = "session.token.stored"
	EventTypeSessionTokenRemoved = "session.token.removed"
	EventTypeCartStored          = "session.cart.stored"
	EventTypeCartRemoved         = "session.cart.removed"
)

// StorageChangedEvent signals that a per-slug storage key changed
type StorageChangedEvent struct {
	BaseDomainEvent
	Key string `json:"key"`
}

// NewStorageChangedEvent creates a storage change event for a slug-scoped key
func NewStorageChangedEvent(eventType, slug, key string) *StorageChangedEvent {
	return &StorageChangedEvent{
		BaseDomainEvent: NewBaseDomainEvent(eventType, slug),
		Key:             key,
	}
}
