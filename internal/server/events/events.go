// Package events is the in-process publish/subscribe channel between
// catalog writes and their listeners (the activity feed).
package events

import (
	"context"
	"sync"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Kind string

const (
	MoleculeCreated      Kind = "molecule.created"
	DrugCandidateCreated Kind = "drug_candidate.created"
	DrugCandidateUpdated Kind = "drug_candidate.updated"
	ProjectCreated       Kind = "project.created"
)

// Event describes a committed catalog write. OwnerID is the acting
// account; it may be nil for system writes.
type Event struct {
	Kind       Kind
	EntityID   int64
	EntityName string
	OwnerID    *int64
	Metadata   models.JSONMap
}

// Handler reacts to an event. Handlers run on the publisher's goroutine and
// must not block for long.
type Handler func(ctx context.Context, e Event)

type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Bus delivers every published event to all subscribers, synchronously and
// in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}
