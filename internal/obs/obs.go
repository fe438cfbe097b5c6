package obs

import (
	"sync"

	"github.com/rs/zerolog"
)

// Sink receives structured debug events from pipeline components. Components
// hold no file-handle state; production wires a zerolog-backed sink and tests
// substitute Capture.
type Sink interface {
	Log(event string, payload map[string]any)
}

// ZerologSink forwards events to a zerolog logger at debug level.
type ZerologSink struct {
	Logger zerolog.Logger
}

func (s *ZerologSink) Log(event string, payload map[string]any) {
	s.Logger.Debug().Fields(payload).Msg(event)
}

// Capture records events in memory for test assertions.
type Capture struct {
	mu     sync.Mutex
	events []Event
}

// Event is one captured sink entry.
type Event struct {
	Name    string
	Payload map[string]any
}

func (c *Capture) Log(event string, payload map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{Name: event, Payload: payload})
}

// Events returns a copy of everything logged so far.
func (c *Capture) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Has reports whether an event with the given name was logged.
func (c *Capture) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.events {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Nop discards every event.
type Nop struct{}

func (Nop) Log(string, map[string]any) {}
