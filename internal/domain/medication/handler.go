package medication

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/auth"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medications", h.ListMedications)
	api.POST("/medications/:key/taken", h.MarkTaken)
	api.DELETE("/medications/:key/taken", h.UnmarkTaken)
	api.GET("/administrations", h.ListAdministrations)
	api.DELETE("/session", h.EndSession)
}

// today returns the caller-supplied date query parameter, defaulting to the
// server's local date. Dashboards pass their own date so the taken state
// matches the user's timezone rather than the server's.
func today(c echo.Context) (string, error) {
	d := c.QueryParam("date")
	if d == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if !datePattern.MatchString(d) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return d, nil
}

func (h *Handler) ListMedications(c echo.Context) error {
	date, err := today(c)
	if err != nil {
		return err
	}
	list, err := h.svc.List(c.Request().Context(), auth.Username(c), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) MarkTaken(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid medication key")
	}
	date, err := today(c)
	if err != nil {
		return err
	}
	admin, err := h.svc.MarkTaken(c.Request().Context(), auth.Username(c), auth.PatientID(c), key, date)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, admin)
}

func (h *Handler) UnmarkTaken(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid medication key")
	}
	date, err := today(c)
	if err != nil {
		return err
	}
	if err := h.svc.Unmark(c.Request().Context(), auth.Username(c), key, date); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "medication not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListAdministrations(c echo.Context) error {
	admins, err := h.svc.Administrations(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *Handler) EndSession(c echo.Context) error {
	h.svc.EndSession(auth.Username(c))
	return c.NoContent(http.StatusNoContent)
}
