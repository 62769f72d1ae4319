// Package adherence serves the dashboard's adherence chart. The figures are
// canned: the source data needed to compute real adherence (scheduled dose
// counts per day) is not present in the record stores, so the dashboard
// shows a fixed illustrative series.
package adherence

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DayScore is one bar of the weekly chart.
type DayScore struct {
	Day     string `json:"day"`
	Percent int    `json:"percent"`
}

// Summary is the adherence payload: an overall progress percentage and the
// weekly breakdown.
type Summary struct {
	Progress int        `json:"progress"`
	Weekly   []DayScore `json:"weekly"`
}

// CannedSummary returns the fixed adherence figures the dashboard renders.
func CannedSummary() *Summary {
	return &Summary{
		Progress: 70,
		Weekly: []DayScore{
			{Day: "Mon", Percent: 80},
			{Day: "Tue", Percent: 95},
			{Day: "Wed", Percent: 100},
			{Day: "Thu", Percent: 60},
			{Day: "Fri", Percent: 90},
			{Day: "Sat", Percent: 100},
			{Day: "Sun", Percent: 70},
		},
	}
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/adherence", h.GetAdherence)
}

func (h *Handler) GetAdherence(c echo.Context) error {
	return c.JSON(http.StatusOK, CannedSummary())
}
