package view

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/mapper"
)

var testViewport = mapper.Viewport{Width: 1200, Height: 800}

func decodeHandUpdate(t *testing.T, raw string) domain.HandUpdate {
	t.Helper()
	var u domain.HandUpdate
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("decoding hand_update: %v", err)
	}
	return u
}

func decodeTrackingUpdate(t *testing.T, raw string) domain.TrackingUpdate {
	t.Helper()
	var u domain.TrackingUpdate
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("decoding tracking_update: %v", err)
	}
	return u
}

func TestHandView_FullEvent(t *testing.T) {
	v := NewHandView(mapper.HandViewCalibration(), testViewport)

	v.Apply(decodeHandUpdate(t, `{
		"hand_position": {"x": 300, "y": 350, "z": 10},
		"chirality": 0,
		"gesture": "fist",
		"timestamp": 2000000000
	}`))

	if v.X != "300.00" || v.Y != "350.00" || v.Z != "10.00" {
		t.Errorf("position = %s/%s/%s, want 300.00/350.00/10.00", v.X, v.Y, v.Z)
	}
	if v.Chirality != "Left" {
		t.Errorf("chirality = %q, want Left", v.Chirality)
	}
	if v.Gesture != "fist" {
		t.Errorf("gesture = %q, want fist", v.Gesture)
	}
	if v.Timestamp != "2.0000" {
		t.Errorf("timestamp = %q, want 2.0000", v.Timestamp)
	}
	if v.Marker.X != 600 || math.Abs(v.Marker.Y) > 1e-9 {
		t.Errorf("marker = (%v, %v), want (600, 0)", v.Marker.X, v.Marker.Y)
	}
}

func TestHandView_MissingPositionDefaultsToOrigin(t *testing.T) {
	v := NewHandView(mapper.HandViewCalibration(), testViewport)

	v.Apply(decodeHandUpdate(t, `{"chirality": 1, "gesture": "open"}`))

	if v.X != "0.00" || v.Y != "0.00" || v.Z != "0.00" {
		t.Errorf("position = %s/%s/%s, want 0.00/0.00/0.00", v.X, v.Y, v.Z)
	}
	if v.Chirality != "Right" {
		t.Errorf("chirality = %q, want Right", v.Chirality)
	}
	if v.Timestamp != "N/A" {
		t.Errorf("timestamp = %q, want N/A", v.Timestamp)
	}
}

func TestHandView_MissingGestureRendersPlaceholder(t *testing.T) {
	v := NewHandView(mapper.HandViewCalibration(), testViewport)

	v.Apply(decodeHandUpdate(t, `{"hand_position": {"x": 1, "y": 2, "z": 3}}`))

	if v.Gesture != "N/A" {
		t.Errorf("gesture = %q, want N/A", v.Gesture)
	}
}

// Chirality is total and two-valued: zero is Left, everything else Right.
func TestHandView_ChiralityMapping(t *testing.T) {
	tests := []struct {
		chirality int
		want      string
	}{
		{0, "Left"},
		{1, "Right"},
		{2, "Right"},
		{-1, "Right"},
		{42, "Right"},
	}

	for _, tt := range tests {
		v := NewHandView(mapper.HandViewCalibration(), testViewport)
		v.Apply(domain.HandUpdate{Chirality: tt.chirality})
		if v.Chirality != tt.want {
			t.Errorf("chirality %d = %q, want %q", tt.chirality, v.Chirality, tt.want)
		}
	}
}

// A present zero timestamp is a real sample, not a missing field.
func TestHandView_ZeroTimestampRenders(t *testing.T) {
	v := NewHandView(mapper.HandViewCalibration(), testViewport)

	v.Apply(decodeHandUpdate(t, `{"timestamp": 0}`))

	if v.Timestamp != "0.0000" {
		t.Errorf("timestamp = %q, want 0.0000", v.Timestamp)
	}
}

func TestTrackView_SingleLeftHand(t *testing.T) {
	v := NewTrackView(mapper.TrackViewCalibration(), testViewport)

	v.Apply(decodeTrackingUpdate(t, `{
		"hand_count": 1,
		"hands": {
			"left": {"palm": {"position": [0, 0, 0], "gesture": "open", "timestamp": 1000000000}}
		}
	}`))

	if v.Left.X != "0.00" || v.Left.Y != "0.00" || v.Left.Z != "0.00" {
		t.Errorf("left position = %s/%s/%s, want 0.00/0.00/0.00", v.Left.X, v.Left.Y, v.Left.Z)
	}
	if v.Left.Gesture != "open" {
		t.Errorf("left gesture = %q, want open", v.Left.Gesture)
	}
	if v.Left.Timestamp != "1.000" {
		t.Errorf("left timestamp = %q, want 1.000", v.Left.Timestamp)
	}
	if v.Left.Marker.X != 600 || v.Left.Marker.Y != 400 {
		t.Errorf("left marker = (%v, %v), want (600, 400)", v.Left.Marker.X, v.Left.Marker.Y)
	}

	// Right hand absent: all its fields stay at the placeholder.
	if v.Right.X != "N/A" || v.Right.Gesture != "N/A" || v.Right.Timestamp != "N/A" {
		t.Errorf("right fields = %s/%s/%s, want N/A everywhere",
			v.Right.X, v.Right.Gesture, v.Right.Timestamp)
	}
}

func TestTrackView_ZeroHandCountSkipsEntirely(t *testing.T) {
	v := NewTrackView(mapper.TrackViewCalibration(), testViewport)

	// Render a real frame first so every field holds live data.
	v.Apply(decodeTrackingUpdate(t, `{
		"hand_count": 2,
		"hands": {
			"left":  {"palm": {"position": [10, 20, 30], "gesture": "pinch", "timestamp": 1000000000}},
			"right": {"palm": {"position": [-10, -20, -30], "gesture": "grab", "timestamp": 1000000000}}
		},
		"complex_gesture": {"gesture": "swipe", "gesture_timestamp": 1500000000}
	}`))

	before := *v

	v.Apply(decodeTrackingUpdate(t, `{"hand_count": 0}`))

	if *v != before {
		t.Errorf("hand_count 0 mutated the view: %+v -> %+v", before, *v)
	}
}

func TestTrackView_ComplexGesture(t *testing.T) {
	v := NewTrackView(mapper.TrackViewCalibration(), testViewport)

	v.Apply(decodeTrackingUpdate(t, `{
		"hand_count": 1,
		"hands": {"left": {"palm": {"position": [0, 0, 0]}}},
		"complex_gesture": {"gesture": "swipeLeft", "gesture_timestamp": 2500000000}
	}`))

	if v.ComplexGesture != "swipeLeft" {
		t.Errorf("complex gesture = %q, want swipeLeft", v.ComplexGesture)
	}
	if v.ComplexTimestamp != "2.500" {
		t.Errorf("complex timestamp = %q, want 2.500", v.ComplexTimestamp)
	}
}

// A hand that drops out of a rendered frame resets its text fields but keeps
// its marker in place.
func TestTrackView_HandLossResetsFieldsKeepsMarker(t *testing.T) {
	v := NewTrackView(mapper.TrackViewCalibration(), testViewport)

	v.Apply(decodeTrackingUpdate(t, `{
		"hand_count": 2,
		"hands": {
			"left":  {"palm": {"position": [150, 150, 0], "gesture": "pinch", "timestamp": 1000000000}},
			"right": {"palm": {"position": [0, 0, 0], "gesture": "grab", "timestamp": 1000000000}}
		}
	}`))

	leftMarker := v.Left.Marker

	v.Apply(decodeTrackingUpdate(t, `{
		"hand_count": 1,
		"hands": {"right": {"palm": {"position": [0, 0, 0], "gesture": "grab", "timestamp": 2000000000}}}
	}`))

	if v.Left.X != "N/A" || v.Left.Gesture != "N/A" || v.Left.Timestamp != "N/A" {
		t.Errorf("left fields after loss = %s/%s/%s, want N/A everywhere",
			v.Left.X, v.Left.Gesture, v.Left.Timestamp)
	}
	if v.Left.Marker != leftMarker {
		t.Errorf("left marker moved after loss: %+v -> %+v", leftMarker, v.Left.Marker)
	}
	if v.Right.Timestamp != "2.000" {
		t.Errorf("right timestamp = %q, want 2.000", v.Right.Timestamp)
	}
}
