package app

import (
	"time"

	"github.com/ayusman/cubescan/internal/cube"
)

// EventType names a scan progress event.
type EventType string

const (
	EventFaceStarted   EventType = "face_started"
	EventCaptureFailed EventType = "capture_failed"
	EventUnknownFace   EventType = "unknown_face"
	EventDuplicateFace EventType = "duplicate_face"
	EventFaceBound     EventType = "face_bound"
	EventScanComplete  EventType = "scan_complete"
	EventSolved        EventType = "solved"
	EventSolveFailed   EventType = "solve_failed"
)

// Event is a progress notification published while scanning and solving.
type Event struct {
	Type      EventType `json:"type"`
	Face      int       `json:"face,omitempty"`
	Slot      string    `json:"slot,omitempty"`
	Colors    string    `json:"colors,omitempty"`
	Completed []string  `json:"completed,omitempty"`
	Remaining []string  `json:"remaining,omitempty"`
	Message   string    `json:"message,omitempty"`
	Time      time.Time `json:"time"`
}

// EventSink receives progress events. Implementations must not block.
type EventSink interface {
	Publish(Event)
}

func slotNames(slots []cube.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func progressEvent(t EventType, state *cube.State) Event {
	return Event{
		Type:      t,
		Face:      state.Len() + 1,
		Completed: slotNames(state.Completed()),
		Remaining: slotNames(state.Remaining()),
		Time:      time.Now(),
	}
}
