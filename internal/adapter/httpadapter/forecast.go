package httpadapter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/couchcryptid/sunshine-sync/internal/domain"
)

// forecastView is a stored row plus the formatted strings the list and
// detail screens show.
type forecastView struct {
	domain.ForecastRow
	Day         string `json:"day"`
	Description string `json:"description"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Wind        string `json:"wind"`
	Pressure    string `json:"pressure_display"`
	Humidity    string `json:"humidity_display"`
	Summary     string `json:"summary"`
}

func newForecastView(r domain.ForecastRow, units domain.Units) forecastView {
	return forecastView{
		ForecastRow: r,
		Day:         r.Day().Format("2006-01-02"),
		Description: domain.ConditionDescription(r.ConditionID),
		High:        domain.FormatTemperature(r.MaxTemp, units),
		Low:         domain.FormatTemperature(r.MinTemp, units),
		Wind:        domain.FormatWind(r.WindSpeed, r.WindDegrees, units),
		Pressure:    domain.FormatPressure(r.Pressure),
		Humidity:    domain.FormatHumidity(r.Humidity),
		Summary:     domain.Summary(r, units),
	}
}

// handleList returns forecast days from today onward, or every stored day
// with ?all=true.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		rows []domain.ForecastRow
		err  error
	)
	if r.URL.Query().Get("all") == "true" {
		rows, err = s.forecasts.List(r.Context())
	} else {
		rows, err = s.forecasts.Upcoming(r.Context(), domain.Today())
	}
	if err != nil {
		s.logger.Error("list forecast failed", "error", err)
		writeError(w, http.StatusInternalServerError, "forecast unavailable")
		return
	}

	views := make([]forecastView, len(rows))
	for i, row := range rows {
		views[i] = newForecastView(row, s.units)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"units":    s.units,
		"forecast": views,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	date, err := strconv.ParseInt(r.PathValue("date"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be epoch milliseconds")
		return
	}

	row, err := s.forecasts.GetByDate(r.Context(), date)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no forecast for that date")
		return
	}
	if err != nil {
		s.logger.Error("get forecast failed", "error", err, "date", date)
		writeError(w, http.StatusInternalServerError, "forecast unavailable")
		return
	}
	writeJSON(w, http.StatusOK, newForecastView(row, s.units))
}
