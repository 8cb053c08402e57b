// Package view holds the display state of the two viewer pages and the
// formatting rules applied to inbound tracking events. Views are plain
// structs updated in place by exactly one consumer; every display field is
// explicit state rather than a hidden global.
package view

import (
	"fmt"

	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/mapper"
)

const placeholder = "N/A"

// Marker is a viewport-pixel position of the rendered hand marker.
type Marker struct {
	X float64
	Y float64
}

// HandView is the single-hand page: one hand's position, chirality, gesture
// and timestamp, plus one marker.
type HandView struct {
	X         string
	Y         string
	Z         string
	Chirality string
	Gesture   string
	Timestamp string
	Marker    Marker

	cal mapper.Calibration
	vp  mapper.Viewport
}

// NewHandView returns a view with waiting placeholders and the marker parked
// at the viewport origin.
func NewHandView(cal mapper.Calibration, vp mapper.Viewport) *HandView {
	return &HandView{
		X:         "Waiting...",
		Y:         "Waiting...",
		Z:         "Waiting...",
		Chirality: "Waiting...",
		Gesture:   "Waiting...",
		Timestamp: "Waiting...",
		cal:       cal,
		vp:        vp,
	}
}

// Apply overwrites the view with one hand_update event. Every event renders:
// a missing position falls back to the origin rather than skipping the frame.
func (v *HandView) Apply(u domain.HandUpdate) {
	pos := domain.Vector{}
	if u.HandPosition != nil {
		pos = *u.HandPosition
	}

	v.X = fmt.Sprintf("%.2f", pos.X)
	v.Y = fmt.Sprintf("%.2f", pos.Y)
	v.Z = fmt.Sprintf("%.2f", pos.Z)
	v.Chirality = chiralityLabel(u.Chirality)
	v.Gesture = textOr(u.Gesture, placeholder)
	v.Timestamp = secondsOr(u.Timestamp, 4, placeholder)

	v.Marker.X, v.Marker.Y = v.cal.Map(pos.X, pos.Y, v.vp)
}

// Viewport returns the pixel dimensions the view maps into.
func (v *HandView) Viewport() mapper.Viewport {
	return v.vp
}

func chiralityLabel(c int) string {
	if c == domain.ChiralityLeft {
		return "Left"
	}
	return "Right"
}

func textOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// secondsOr formats a nanosecond timestamp as seconds with the given number
// of decimals, or returns the fallback when the timestamp is absent.
func secondsOr(ns *int64, decimals int, fallback string) string {
	if ns == nil {
		return fallback
	}
	return fmt.Sprintf("%.*f", decimals, float64(*ns)/1e9)
}
