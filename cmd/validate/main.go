// Command validate checks a forecast payload file against the parser the sync
// service uses. It prints one line per parsed day, or the element and field
// that made the payload unusable.
//
// Usage:
//
//	go run ./cmd/validate -file data/mock/forecast_14day.json -units imperial
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"github.com/jonboulle/clockwork"
)

// refTime pins "today" so output is stable across runs.
var refTime = time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

func main() {
	file := flag.String("file", "", "path to a forecast JSON payload")
	unitsFlag := flag.String("units", "metric", "display units: metric or imperial")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}
	os.Exit(run(*file, *unitsFlag))
}

func run(path, unitsFlag string) int {
	units, err := domain.ParseUnits(unitsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	body, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read payload: %v\n", err)
		return 1
	}

	domain.SetClock(clockwork.NewFakeClockAt(refTime))
	defer domain.SetClock(nil)

	fmt.Println("=== Forecast Payload Validation ===")
	fmt.Println()

	rows, err := domain.ParseForecast(string(body))
	if err != nil {
		var fe *domain.FormatError
		if errors.As(err, &fe) {
			fmt.Printf("  element: %s\n", elementLabel(fe.Index))
			if fe.Field != "" {
				fmt.Printf("  field:   %s\n", fe.Field)
			}
		}
		fmt.Printf("  error:   %v\n", err)
		fmt.Println("\nValidation FAILED.")
		return 1
	}

	if len(rows) == 0 {
		fmt.Println("  payload is an empty array; a sync would keep the existing cache")
	}
	for i, row := range rows {
		fmt.Printf("  [%2d] %s\n", i, domain.Summary(row, units))
		fmt.Printf("       %s, %s humidity, wind %s\n",
			domain.FormatPressure(row.Pressure), domain.FormatHumidity(row.Humidity),
			domain.FormatWind(row.WindSpeed, row.WindDegrees, units))
	}

	fmt.Printf("\nRows: %d\n", len(rows))
	fmt.Println("\nAll validations passed.")
	return 0
}

func elementLabel(index int) string {
	if index < 0 {
		return "document"
	}
	return fmt.Sprintf("#%d", index)
}
