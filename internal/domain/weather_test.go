package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	u, err := ParseUnits("Imperial")
	require.NoError(t, err)
	assert.Equal(t, Imperial, u)

	u, err = ParseUnits(" metric ")
	require.NoError(t, err)
	assert.Equal(t, Metric, u)

	_, err = ParseUnits("kelvin")
	assert.Error(t, err)
}

func TestConditionDescription(t *testing.T) {
	assert.Equal(t, "Clear", ConditionDescription(800))
	assert.Equal(t, "Light rain", ConditionDescription(500))
	assert.Equal(t, "Storm", ConditionDescription(299))
	assert.Equal(t, "Snow", ConditionDescription(699))
	assert.Equal(t, "Unknown (42)", ConditionDescription(42))
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "30°C", FormatTemperature(30, Metric))
	assert.Equal(t, "86°F", FormatTemperature(30, Imperial))
	assert.Equal(t, "-4°F", FormatTemperature(-20, Imperial))
	assert.Equal(t, "30°C / 18°C", FormatHighLows(30, 18, Metric))
}

func TestCompassDirection(t *testing.T) {
	cases := map[float64]string{
		0: "N", 22.4: "N", 22.5: "NE", 90: "E", 135: "SE",
		180: "S", 225: "SW", 270: "W", 315: "NW", 337.5: "N", 359: "N",
	}
	for deg, want := range cases {
		assert.Equal(t, want, CompassDirection(deg), "degrees %v", deg)
	}
}

func TestFormatWind(t *testing.T) {
	assert.Equal(t, "10 km/h S", FormatWind(10, 180, Metric))
	assert.Equal(t, "6 mph W", FormatWind(10, 270, Imperial))
}

func TestFormatPressureAndHumidity(t *testing.T) {
	assert.Equal(t, "1012 hPa", FormatPressure(1012.4))
	assert.Equal(t, "50 %", FormatHumidity(50))
}

func TestSummary(t *testing.T) {
	row := ForecastRow{
		Date:        time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC).UnixMilli(),
		ConditionID: 800,
		MaxTemp:     30,
		MinTemp:     18,
	}
	assert.Equal(t, "Wed, Oct 14 - Clear - 30°C / 18°C", Summary(row, Metric))
}
