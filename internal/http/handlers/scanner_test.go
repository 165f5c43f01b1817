package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "tiketbus/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func scannerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/validate", ValidateTicket)
	r.POST("/mark-used", MarkTicketUsed)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateEndpointUnknownCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM bookings b").
		WithArgs("NOPE", "NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := postJSON(t, scannerRouter(), "/validate", `{"code":"NOPE"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unknown code must be 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Valid  bool   `json:"valid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Valid || resp.Status != "invalid" {
		t.Fatalf("expected invalid verdict, got %+v", resp)
	}
}

func TestValidateEndpointEmptyCode(t *testing.T) {
	w := postJSON(t, scannerRouter(), "/validate", `{"code":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty code must be 400, got %d", w.Code)
	}
}

func TestValidateEndpointBadPayload(t *testing.T) {
	w := postJSON(t, scannerRouter(), "/validate", `{`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("broken json must be 400, got %d", w.Code)
	}
}

func TestMarkUsedEndpointConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// zero rows from the conditional update, then the re-read shows completed
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM bookings b").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "schedule_id", "travel_date",
			"seat_numbers", "passenger_names", "passenger_phones",
			"total_amount", "booking_reference", "payment_status", "booking_status", "qr_code",
		}).AddRow(
			10, 7, 5, "2026-03-16",
			"[3]", `["Budi"]`, `["0811"]`,
			125000, "WFB20260315042", "paid", "completed", "WFB-WFB20260315042",
		))

	w := postJSON(t, scannerRouter(), "/mark-used", `{"ticket_id":10}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("second check-in must be 409, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Success == nil || *resp.Success {
		t.Fatalf("failed check-in must report success=false, got %s", w.Body.String())
	}
	if resp.Error == "" {
		t.Fatalf("failed check-in must carry an error message")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkUsedEndpointMissingID(t *testing.T) {
	w := postJSON(t, scannerRouter(), "/mark-used", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing ticket_id must be 400, got %d", w.Code)
	}
	var resp struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Success == nil || *resp.Success {
		t.Fatalf("rejected check-in must report success=false, got %s", w.Body.String())
	}
}
