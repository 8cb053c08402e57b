// mocktracker feeds trackingd synthetic frames for local development: two
// palms circling the tracking volume with cycling gestures, POSTed to the
// ingest endpoint at a fixed rate.
package main

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/handstream/handstream/internal/domain"
)

func main() {
	serverURL := "http://localhost:5000"
	if s := os.Getenv("SERVER_URL"); s != "" {
		serverURL = s
	}

	intervalMs := 50
	if s := os.Getenv("INTERVAL_MS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			intervalMs = n
		}
	}

	ingestURL := serverURL + "/api/v1/frames"
	log.Printf("mocktracker posting to %s every %dms", ingestURL, intervalMs)

	gestures := []string{"idle", "pinch", "grab"}
	ticker := time.NewTicker(time.Duration(intervalMs) * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for range ticker.C {
		t := time.Since(start).Seconds()
		frame := syntheticFrame(t, gestures)

		body, err := json.Marshal(frame)
		if err != nil {
			log.Printf("marshal failed: %v", err)
			continue
		}

		resp, err := http.Post(ingestURL, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("post failed: %v", err)
			continue
		}
		resp.Body.Close()
	}
}

// syntheticFrame traces both palms around a circle of radius 150 tracking
// units, with a swipe classified every few seconds.
func syntheticFrame(t float64, gestures []string) domain.Frame {
	now := time.Now().UnixNano()
	angle := t * math.Pi / 2

	left := &domain.HandFrame{
		Position: &domain.Vector{
			X: 150 * math.Cos(angle),
			Y: 150 * math.Sin(angle),
			Z: 20 * math.Sin(t),
		},
		Gesture:   gestures[int(t)%len(gestures)],
		Timestamp: &now,
	}
	right := &domain.HandFrame{
		Position: &domain.Vector{
			X: -150 * math.Cos(angle),
			Y: -150 * math.Sin(angle),
			Z: 20 * math.Cos(t),
		},
		Gesture:   gestures[(int(t)+1)%len(gestures)],
		Timestamp: &now,
	}

	complexGesture := &domain.ComplexGesture{Gesture: "idle", GestureTimestamp: &now}
	if int(t)%5 == 0 {
		complexGesture.Gesture = "swipe"
	}

	return domain.Frame{
		LeftHand:       left,
		RightHand:      right,
		ComplexGesture: complexGesture,
	}
}
