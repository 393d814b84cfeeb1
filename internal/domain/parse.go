package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// rawDay mirrors one element of the upstream forecast array. Pointers let the
// parser tell a missing field from a zero value.
type rawDay struct {
	DayOffset *int           `json:"dayOffset"`
	Weather   []rawCondition `json:"weather"`
	Temp      *rawTemp       `json:"temp"`
	Humidity  *float64       `json:"humidity"`
	Pressure  *float64       `json:"pressure"`
	Speed     *float64       `json:"speed"`
	Deg       *float64       `json:"deg"`
}

type rawCondition struct {
	ID *int `json:"id"`
}

type rawTemp struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

var errMissing = errors.New("missing required field")

// ParseForecast decodes a forecast payload relative to the package clock.
// See ParseForecastAt.
func ParseForecast(body string) ([]ForecastRow, error) {
	return ParseForecastAt(body, clock.Now())
}

// ParseForecastAt decodes a forecast payload into rows in source order. Each
// element's date is the normalized day of now plus its dayOffset.
//
// The result is all-or-nothing: any structural problem yields a *FormatError
// and no rows. A legitimately empty array yields an empty, non-nil slice.
func ParseForecastAt(body string, now time.Time) ([]ForecastRow, error) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, &FormatError{Index: -1, Err: errors.New("top-level value is not an array")}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elems); err != nil {
		return nil, &FormatError{Index: -1, Err: err}
	}

	today := NormalizeDay(now)
	rows := make([]ForecastRow, 0, len(elems))
	seen := make(map[int]int, len(elems))

	for i, elem := range elems {
		row, offset, err := parseDay(i, elem, today)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[offset]; dup {
			return nil, &FormatError{Index: i, Field: "dayOffset",
				Err: fmt.Errorf("duplicate offset %d (also at element %d)", offset, prev)}
		}
		seen[offset] = i
		rows = append(rows, row)
	}
	return rows, nil
}

func parseDay(i int, elem json.RawMessage, today time.Time) (ForecastRow, int, error) {
	var d rawDay
	if err := json.Unmarshal(elem, &d); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ForecastRow{}, 0, &FormatError{Index: i, Field: typeErr.Field,
				Err: fmt.Errorf("expected %s, got %s", typeErr.Type, typeErr.Value)}
		}
		return ForecastRow{}, 0, &FormatError{Index: i, Err: err}
	}

	missing := func(field string) error {
		return &FormatError{Index: i, Field: field, Err: errMissing}
	}

	switch {
	case d.DayOffset == nil:
		return ForecastRow{}, 0, missing("dayOffset")
	case len(d.Weather) == 0:
		return ForecastRow{}, 0, missing("weather")
	case d.Weather[0].ID == nil:
		return ForecastRow{}, 0, missing("weather.id")
	case d.Temp == nil:
		return ForecastRow{}, 0, missing("temp")
	case d.Temp.Min == nil:
		return ForecastRow{}, 0, missing("temp.min")
	case d.Temp.Max == nil:
		return ForecastRow{}, 0, missing("temp.max")
	case d.Humidity == nil:
		return ForecastRow{}, 0, missing("humidity")
	case d.Pressure == nil:
		return ForecastRow{}, 0, missing("pressure")
	case d.Speed == nil:
		return ForecastRow{}, 0, missing("speed")
	case d.Deg == nil:
		return ForecastRow{}, 0, missing("deg")
	}

	offset := *d.DayOffset
	return ForecastRow{
		Date:        DayMillis(today.AddDate(0, 0, offset)),
		ConditionID: *d.Weather[0].ID,
		MinTemp:     *d.Temp.Min,
		MaxTemp:     *d.Temp.Max,
		Humidity:    *d.Humidity,
		Pressure:    *d.Pressure,
		WindSpeed:   *d.Speed,
		WindDegrees: *d.Deg,
	}, offset, nil
}
