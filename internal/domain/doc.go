// Package domain models the daily weather forecast kept in the local cache.
//
// # Payload
//
// The upstream endpoint returns a JSON array, one object per forecast day in
// chronological order:
//
//	[{"dayOffset":0,"weather":[{"id":800}],"temp":{"max":30,"min":18},
//	  "humidity":50,"pressure":1012,"speed":3.5,"deg":180}, ...]
//
// Only the first entry of "weather" is used. Every field above is required;
// extra fields are ignored.
//
// # Dates
//
// Rows are keyed by day, not by instant. A day is normalized by taking the
// calendar date in the clock's location and expressing it as midnight UTC,
// then stored as epoch milliseconds. Element dates are today's normalized
// day plus "dayOffset" days, so a batch parsed at 23:59 and one parsed at
// 00:01 the next day differ by exactly one day. See [NormalizeDay].
//
// # Units
//
// Stored values are metric (Celsius, hPa, percent humidity, degrees for wind
// direction). Conversion to imperial happens only when rendering, see
// [FormatTemperature] and [FormatWind].
//
// # Condition codes
//
// "weather[0].id" is an OpenWeatherMap condition code: 2xx thunderstorm,
// 3xx drizzle, 5xx rain, 6xx snow, 7xx atmosphere, 800 clear, 80x clouds.
package domain
