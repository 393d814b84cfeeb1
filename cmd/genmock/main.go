// Command genmock writes a deterministic N-day forecast payload in the shape
// the sync service expects from its upstream, and can optionally serve it so
// the service has something to fetch during local runs.
//
// Usage:
//
//	go run ./cmd/genmock -days 14 -out data/mock/forecast_14day.json
//	go run ./cmd/genmock -serve :8081
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/domain"
)

// conditions cycles through a spread of condition groups so every display
// branch shows up in the fixture.
var conditions = []int{800, 801, 803, 500, 501, 211, 300, 600, 741, 802, 804, 502, 800, 701}

type mockCondition struct {
	ID int `json:"id"`
}

type mockTemp struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type mockDay struct {
	DayOffset int             `json:"dayOffset"`
	Weather   []mockCondition `json:"weather"`
	Temp      mockTemp        `json:"temp"`
	Humidity  float64         `json:"humidity"`
	Pressure  float64         `json:"pressure"`
	Speed     float64         `json:"speed"`
	Deg       float64         `json:"deg"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	days := flag.Int("days", 14, "number of forecast days to generate")
	out := flag.String("out", "", "output path for the JSON payload")
	serve := flag.String("serve", "", "if set, serve the payload at /forecast on this address")
	flag.Parse()

	if *days < 0 {
		return fmt.Errorf("-days must not be negative, got %d", *days)
	}
	if *out == "" && *serve == "" {
		flag.Usage()
		return errors.New("nothing to do: set -out, -serve or both")
	}

	payload, err := json.MarshalIndent(generate(*days), "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	// Round-trip through the real parser so a bad fixture never gets written.
	rows, err := domain.ParseForecastAt(string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("generated payload does not parse: %w", err)
	}
	log.Printf("generated %d days", len(rows))

	if *out != "" {
		if err := writeFile(*out, payload); err != nil {
			return fmt.Errorf("writing payload: %w", err)
		}
		log.Printf("wrote payload: %s", *out)
	}

	if *serve != "" {
		return servePayload(*serve, payload)
	}
	return nil
}

func generate(days int) []mockDay {
	out := make([]mockDay, days)
	for i := range days {
		// A gentle warm-up and cool-down so the fixture looks like weather.
		swing := 6 * math.Sin(float64(i)/float64(max(days, 1))*math.Pi)
		low := math.Round(12 + swing)
		out[i] = mockDay{
			DayOffset: i,
			Weather:   []mockCondition{{ID: conditions[i%len(conditions)]}},
			Temp:      mockTemp{Min: low, Max: low + 8 + float64(i%3)},
			Humidity:  float64(45 + (i*7)%40),
			Pressure:  float64(1000 + (i*3)%25),
			Speed:     math.Round((2+float64(i%5)*1.5)*10) / 10,
			Deg:       float64((i * 45) % 360),
		}
	}
	return out
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func servePayload(addr string, payload []byte) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /forecast", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("GET %s", r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload) //nolint:errcheck // best-effort mock server
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("serving mock forecast on %s/forecast", addr)
	return srv.ListenAndServe()
}
