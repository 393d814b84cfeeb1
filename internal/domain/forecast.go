package domain

import "time"

// ForecastRow is one day of forecast as stored in the weather table.
// Temperatures, pressure and wind are kept in the units the upstream sends
// (metric: Celsius, hPa, m/s).
type ForecastRow struct {
	Date        int64   `json:"date"` // epoch millis of the normalized day
	ConditionID int     `json:"weather_id"`
	MinTemp     float64 `json:"min"`
	MaxTemp     float64 `json:"max"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDegrees float64 `json:"degrees"`
}

// Day returns the row date as a UTC time.
func (r ForecastRow) Day() time.Time {
	return time.UnixMilli(r.Date).UTC()
}

// DayMillis converts a normalized day to the epoch-millis form used in rows.
func DayMillis(day time.Time) int64 {
	return day.UnixMilli()
}

// Snapshot is the full batch committed by one successful sync cycle.
type Snapshot struct {
	SyncedAt time.Time     `json:"synced_at"`
	Rows     []ForecastRow `json:"rows"`
}

// SyncStatus classifies the outcome of one sync cycle.
type SyncStatus string

const (
	StatusSynced         SyncStatus = "synced"
	StatusEmpty          SyncStatus = "empty"
	StatusTransportError SyncStatus = "transport_error"
	StatusFormatError    SyncStatus = "format_error"
	StatusStoreError     SyncStatus = "store_error"
	StatusCanceled       SyncStatus = "canceled"
)

// SyncResult is what a sync cycle reports back instead of an error.
type SyncResult struct {
	Status    SyncStatus    `json:"status"`
	Rows      int           `json:"rows"`
	Err       error         `json:"-"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// OK reports whether the cycle left the store holding the latest batch or
// legitimately had nothing to replace.
func (r SyncResult) OK() bool {
	return r.Status == StatusSynced || r.Status == StatusEmpty
}
