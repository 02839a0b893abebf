package aperture

import "time"

const (
	CHUNK_DONE EventType = iota
	RUN_DONE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ChunkDoneEvent is emitted once the hits of a chunk are merged into the
// output grid. Faces [FirstFace, EndFace) made up the chunk.
type ChunkDoneEvent struct {
	Chunk     int
	Chunks    int
	FirstFace int
	EndFace   int

	Combinations int
	Candidates   int
	Inside       int
	Degenerate   int
	Confirmed    int
	Selected     int
}

func (e ChunkDoneEvent) Type() EventType { return CHUNK_DONE }

// Progress returns the fraction of chunks completed, in (0, 1].
func (e ChunkDoneEvent) Progress() float64 {
	return float64(e.Chunk+1) / float64(e.Chunks)
}

// RunDoneEvent is emitted at the end of a successful run.
type RunDoneEvent struct {
	Rays    int
	Faces   int
	Chunks  int
	Hits    int
	Elapsed time.Duration
}

func (e RunDoneEvent) Type() EventType { return RUN_DONE }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches run events to listeners. Listeners are called from the
// goroutine that called Run, never concurrently.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 8),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

// discard drops buffered events without sending them.
func (e *Events) discard() {
	e.buffer = e.buffer[:0]
}
