package view

import (
	"fmt"

	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/mapper"
)

// HandPanel is one hand's text fields plus its marker on the two-hand page.
type HandPanel struct {
	X         string
	Y         string
	Z         string
	Gesture   string
	Timestamp string
	Marker    Marker
}

// TrackView is the two-hand page: per-hand panels plus the combined gesture.
type TrackView struct {
	Left             HandPanel
	Right            HandPanel
	ComplexGesture   string
	ComplexTimestamp string

	cal mapper.Calibration
	vp  mapper.Viewport
}

// NewTrackView returns a view with every field at its "N/A" placeholder.
func NewTrackView(cal mapper.Calibration, vp mapper.Viewport) *TrackView {
	return &TrackView{
		Left:             emptyPanel(),
		Right:            emptyPanel(),
		ComplexGesture:   placeholder,
		ComplexTimestamp: placeholder,
		cal:              cal,
		vp:               vp,
	}
}

func emptyPanel() HandPanel {
	return HandPanel{
		X:         placeholder,
		Y:         placeholder,
		Z:         placeholder,
		Gesture:   placeholder,
		Timestamp: placeholder,
	}
}

// Apply overwrites the view with one tracking_update event.
//
// Frames with no detected hands are ignored outright: rendering them would
// flash zeroed positions between real samples. Within a rendered frame, a
// hand that is absent has its text fields reset to "N/A" while its marker
// stays where it was.
func (v *TrackView) Apply(u domain.TrackingUpdate) {
	if u.HandCount == 0 {
		return
	}

	v.applyHand(&v.Left, u.Hands.Left)
	v.applyHand(&v.Right, u.Hands.Right)

	if u.ComplexGesture != nil {
		v.ComplexGesture = textOr(u.ComplexGesture.Gesture, placeholder)
		v.ComplexTimestamp = secondsOr(u.ComplexGesture.GestureTimestamp, 3, placeholder)
	} else {
		v.ComplexGesture = placeholder
		v.ComplexTimestamp = placeholder
	}
}

func (v *TrackView) applyHand(panel *HandPanel, hand *domain.HandState) {
	if hand == nil || hand.Palm == nil {
		marker := panel.Marker
		*panel = emptyPanel()
		panel.Marker = marker
		return
	}

	palm := hand.Palm
	if palm.Position != nil {
		pos := *palm.Position
		panel.X = fmt.Sprintf("%.2f", pos[0])
		panel.Y = fmt.Sprintf("%.2f", pos[1])
		panel.Z = fmt.Sprintf("%.2f", pos[2])
		panel.Marker.X, panel.Marker.Y = v.cal.Map(pos[0], pos[1], v.vp)
	} else {
		panel.X = placeholder
		panel.Y = placeholder
		panel.Z = placeholder
	}
	panel.Gesture = textOr(palm.Gesture, placeholder)
	panel.Timestamp = secondsOr(palm.Timestamp, 3, placeholder)
}

// Viewport returns the pixel dimensions the view maps into.
func (v *TrackView) Viewport() mapper.Viewport {
	return v.vp
}
