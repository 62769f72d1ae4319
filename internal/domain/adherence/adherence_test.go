package adherence

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCannedSummary(t *testing.T) {
	s := CannedSummary()
	if s.Progress != 70 {
		t.Errorf("Progress = %d, want 70", s.Progress)
	}
	if len(s.Weekly) != 7 {
		t.Fatalf("Weekly has %d entries, want 7", len(s.Weekly))
	}
	if s.Weekly[0].Day != "Mon" || s.Weekly[6].Day != "Sun" {
		t.Errorf("week bounds = %s..%s", s.Weekly[0].Day, s.Weekly[6].Day)
	}
}

func TestHandler_GetAdherence(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/adherence", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewHandler().GetAdherence(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var s Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Progress != 70 || len(s.Weekly) != 7 {
		t.Errorf("payload = %+v", s)
	}
}
