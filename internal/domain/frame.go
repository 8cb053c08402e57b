package domain

import (
	"encoding/json"
)

// Event names carried on the stream.
const (
	EventHandUpdate     = "hand_update"
	EventTrackingUpdate = "tracking_update"
)

// Chirality values as reported by the tracking sensor.
const (
	ChiralityLeft  = 0
	ChiralityRight = 1
)

// Envelope wraps a named event and its payload for the WebSocket stream.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Vector is a 3D position in tracking-space units.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is the raw tracking state as produced upstream: one record per hand
// plus an optional two-hand combined gesture. A hand is present when both the
// record and its position are non-nil.
type Frame struct {
	LeftHand       *HandFrame      `json:"left_hand,omitempty"`
	RightHand      *HandFrame      `json:"right_hand,omitempty"`
	ComplexGesture *ComplexGesture `json:"complex_gesture,omitempty"`
}

// HandFrame is one hand's sample within a Frame.
type HandFrame struct {
	Position  *Vector `json:"position"`
	Gesture   string  `json:"gesture,omitempty"`
	Timestamp *int64  `json:"timestamp,omitempty"` // nanoseconds
}

// ComplexGesture is a gesture classification requiring both hands.
type ComplexGesture struct {
	Gesture          string `json:"gesture"`
	GestureTimestamp *int64 `json:"gesture_timestamp,omitempty"` // nanoseconds
}

// HandUpdate is the Page A wire event: a single hand's sample.
type HandUpdate struct {
	HandPosition *Vector `json:"hand_position,omitempty"`
	Chirality    int     `json:"chirality"`
	Gesture      string  `json:"gesture,omitempty"`
	Timestamp    *int64  `json:"timestamp,omitempty"` // nanoseconds
}

// TrackingUpdate is the Page B wire event: the full frame keyed by hand side.
type TrackingUpdate struct {
	HandCount      int             `json:"hand_count"`
	Hands          Hands           `json:"hands"`
	ComplexGesture *ComplexGesture `json:"complex_gesture,omitempty"`
}

type Hands struct {
	Left  *HandState `json:"left,omitempty"`
	Right *HandState `json:"right,omitempty"`
}

type HandState struct {
	Palm *Palm `json:"palm,omitempty"`
}

// Palm carries the palm sample; Position is the ordered [x, y, z] triple.
type Palm struct {
	Position  *[3]float64 `json:"position,omitempty"`
	Gesture   string      `json:"gesture,omitempty"`
	Timestamp *int64      `json:"timestamp,omitempty"` // nanoseconds
}

// Present reports whether the hand record carries a usable sample.
func (h *HandFrame) Present() bool {
	return h != nil && h.Position != nil
}

// HandCount counts the hands with usable samples in the frame.
func (f *Frame) HandCount() int {
	n := 0
	if f.LeftHand.Present() {
		n++
	}
	if f.RightHand.Present() {
		n++
	}
	return n
}

// TrackingUpdate derives the Page B wire event from a frame. Absent hands are
// omitted rather than zeroed so viewers can tell "no hand" from the origin.
func (f *Frame) TrackingUpdate() TrackingUpdate {
	u := TrackingUpdate{
		HandCount:      f.HandCount(),
		ComplexGesture: f.ComplexGesture,
	}
	if f.LeftHand.Present() {
		u.Hands.Left = &HandState{Palm: f.LeftHand.palm()}
	}
	if f.RightHand.Present() {
		u.Hands.Right = &HandState{Palm: f.RightHand.palm()}
	}
	return u
}

// HandUpdates derives one Page A wire event per present hand.
func (f *Frame) HandUpdates() []HandUpdate {
	var updates []HandUpdate
	if f.LeftHand.Present() {
		updates = append(updates, f.LeftHand.handUpdate(ChiralityLeft))
	}
	if f.RightHand.Present() {
		updates = append(updates, f.RightHand.handUpdate(ChiralityRight))
	}
	return updates
}

func (h *HandFrame) palm() *Palm {
	pos := [3]float64{h.Position.X, h.Position.Y, h.Position.Z}
	return &Palm{
		Position:  &pos,
		Gesture:   h.Gesture,
		Timestamp: h.Timestamp,
	}
}

func (h *HandFrame) handUpdate(chirality int) HandUpdate {
	return HandUpdate{
		HandPosition: h.Position,
		Chirality:    chirality,
		Gesture:      h.Gesture,
		Timestamp:    h.Timestamp,
	}
}

// DefaultFrame is the fallback emitted while no tracking data has ever been
// seen: both hands parked at the origin with placeholder gestures.
func DefaultFrame() Frame {
	zero := int64(0)
	origin := func() *HandFrame {
		return &HandFrame{
			Position:  &Vector{},
			Gesture:   "N/A",
			Timestamp: &zero,
		}
	}
	return Frame{
		LeftHand:  origin(),
		RightHand: origin(),
		ComplexGesture: &ComplexGesture{
			Gesture:          "N/A",
			GestureTimestamp: &zero,
		},
	}
}
