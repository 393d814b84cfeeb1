package domain

import (
	"fmt"
	"strings"
)

// Units selects how temperatures and wind are rendered for display.
// Stored rows always hold metric values.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// ParseUnits accepts "metric" or "imperial", case-insensitively.
func ParseUnits(s string) (Units, error) {
	switch u := Units(strings.ToLower(strings.TrimSpace(s))); u {
	case Metric, Imperial:
		return u, nil
	default:
		return "", fmt.Errorf("unknown units %q", s)
	}
}

// conditionDescriptions covers the OpenWeatherMap condition codes the
// forecast endpoint emits. Codes not listed fall back to their group.
var conditionDescriptions = map[int]string{
	200: "Thunderstorm with light rain",
	201: "Thunderstorm with rain",
	202: "Thunderstorm with heavy rain",
	210: "Light thunderstorm",
	211: "Thunderstorm",
	212: "Heavy thunderstorm",
	221: "Ragged thunderstorm",
	300: "Light drizzle",
	301: "Drizzle",
	302: "Heavy drizzle",
	500: "Light rain",
	501: "Moderate rain",
	502: "Heavy rain",
	503: "Intense rain",
	504: "Extreme rain",
	511: "Freezing rain",
	520: "Light shower rain",
	521: "Shower rain",
	522: "Heavy shower rain",
	600: "Light snow",
	601: "Snow",
	602: "Heavy snow",
	611: "Sleet",
	615: "Light rain and snow",
	616: "Rain and snow",
	620: "Light shower snow",
	621: "Shower snow",
	622: "Heavy shower snow",
	701: "Mist",
	711: "Smoke",
	721: "Haze",
	731: "Sand, dust whirls",
	741: "Fog",
	751: "Sand",
	761: "Dust",
	762: "Volcanic ash",
	771: "Squalls",
	781: "Tornado",
	800: "Clear",
	801: "Few clouds",
	802: "Scattered clouds",
	803: "Broken clouds",
	804: "Overcast clouds",
}

// ConditionDescription returns a human-readable description for a weather
// condition code.
func ConditionDescription(id int) string {
	if d, ok := conditionDescriptions[id]; ok {
		return d
	}
	switch {
	case id >= 200 && id < 300:
		return "Storm"
	case id >= 300 && id < 400:
		return "Drizzle"
	case id >= 500 && id < 600:
		return "Rain"
	case id >= 600 && id < 700:
		return "Snow"
	case id >= 700 && id < 800:
		return "Atmosphere"
	case id >= 800 && id < 900:
		return "Clouds"
	default:
		return fmt.Sprintf("Unknown (%d)", id)
	}
}

// FormatTemperature renders a Celsius value in the requested units, rounded
// to whole degrees.
func FormatTemperature(celsius float64, units Units) string {
	if units == Imperial {
		return fmt.Sprintf("%.0f°F", celsius*1.8+32)
	}
	return fmt.Sprintf("%.0f°C", celsius)
}

// FormatHighLows renders "high / low".
func FormatHighLows(high, low float64, units Units) string {
	return FormatTemperature(high, units) + " / " + FormatTemperature(low, units)
}

// FormatWind renders speed and an 8-point compass direction. Speeds are
// displayed as km/h, or converted to mph for imperial.
func FormatWind(speed, degrees float64, units Units) string {
	unit := "km/h"
	if units == Imperial {
		speed *= 0.621371192237334
		unit = "mph"
	}
	return fmt.Sprintf("%.0f %s %s", speed, unit, CompassDirection(degrees))
}

// CompassDirection maps meteorological degrees to N, NE, E, SE, S, SW, W or NW.
func CompassDirection(degrees float64) string {
	switch {
	case degrees >= 337.5 || degrees < 22.5:
		return "N"
	case degrees < 67.5:
		return "NE"
	case degrees < 112.5:
		return "E"
	case degrees < 157.5:
		return "SE"
	case degrees < 202.5:
		return "S"
	case degrees < 247.5:
		return "SW"
	case degrees < 292.5:
		return "W"
	default:
		return "NW"
	}
}

func FormatPressure(hpa float64) string { return fmt.Sprintf("%.0f hPa", hpa) }

func FormatHumidity(pct float64) string { return fmt.Sprintf("%.0f %%", pct) }

// Summary is the one-line shareable description of a day.
func Summary(row ForecastRow, units Units) string {
	return fmt.Sprintf("%s - %s - %s",
		row.Day().Format("Mon, Jan 2"),
		ConditionDescription(row.ConditionID),
		FormatHighLows(row.MaxTemp, row.MinTemp, units),
	)
}
