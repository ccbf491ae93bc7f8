package generate

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event names published by the service.
const (
	EventGenerateStart  = "generate_start"
	EventBatchFailed    = "batch_failed"
	EventGenerateDone   = "generate_done"
	EventGenerateFailed = "generate_failed"
	EventMusicDone      = "music_done"
	EventMusicFailed    = "music_failed"
)

// Event represents a generation lifecycle event.
type Event struct {
	Name         string
	GenerationID string
	ModelID      string
	Fields       map[string]any
}

// EventPublisher receives events from the service. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// MemoryPublisher stores events in memory.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Names returns the recorded event names in order.
func (p *MemoryPublisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Name
	}
	return out
}

// LogPublisher writes events to a zerolog logger at debug level.
type LogPublisher struct {
	Logger zerolog.Logger
}

func (p LogPublisher) Publish(e Event) {
	p.Logger.Debug().
		Str("event", e.Name).
		Str("generation_id", e.GenerationID).
		Str("model", e.ModelID).
		Fields(e.Fields).
		Msg("event")
}
