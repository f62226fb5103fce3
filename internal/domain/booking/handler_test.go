package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studiora/studiora-api/internal/middleware"
)

func testAuth(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func testRouter(h *Handler, userID uuid.UUID) chi.Router {
	r := chi.NewRouter()
	r.Mount("/bookings", h.Routes(testAuth(userID)))
	r.Get("/studios/{id}/availability", h.Availability)
	return r
}

func createBody(studioID uuid.UUID, date, start string, hours int) string {
	return fmt.Sprintf(
		`{"studio_id":"%s","date":"%s","start_time":"%s","duration_hours":%d,"guest_count":2}`,
		studioID, date, start, hours)
}

func TestCreateBookingEndpoint(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})
	router := testRouter(NewHandler(svc), uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(createBody(studioID, "2026-03-14", "14:00", 2)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    BookingResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("success = false")
	}
	if envelope.Data.Status != "pending" || envelope.Data.PaymentStatus != "pending" {
		t.Fatalf("state = %s/%s, want pending/pending", envelope.Data.Status, envelope.Data.PaymentStatus)
	}
	if envelope.Data.Price == nil || envelope.Data.Price.Total != 6490 {
		t.Fatalf("price = %+v, want breakdown with total 6490", envelope.Data.Price)
	}
	if envelope.Data.StartTime != "14:00" {
		t.Fatalf("start time = %q, want 14:00", envelope.Data.StartTime)
	}
}

func TestCreateBookingConflictReturns409(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})
	router := testRouter(NewHandler(svc), uuid.New())

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/bookings",
			strings.NewReader(createBody(studioID, "2026-03-14", "14:00", 2)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestCreateBookingValidatesPayload(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})
	router := testRouter(NewHandler(svc), uuid.New())

	cases := []string{
		`not json`,
		createBody(studioID, "tomorrow", "14:00", 2),
		createBody(studioID, "2026-03-14", "14:30", 2),
		createBody(studioID, "2026-03-14", "14:00", 0),
		createBody(studioID, "2026-03-14", "14:00", 9),
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest && rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %q: status = %d, want 400 or 422", body, rec.Code)
		}
	}
	if len(repo.bookings) != 0 {
		t.Fatalf("invalid payload created a booking")
	}
}

func TestCreateBookingStoreOutageReturns503(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})
	router := testRouter(NewHandler(svc), uuid.New())

	repo.findErr = errors.New("connection reset")
	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(createBody(studioID, "2026-03-14", "14:00", 2)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})
	router := testRouter(NewHandler(svc), uuid.New())

	// Seed one booking through the API
	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(createBody(studioID, "2026-03-14", "22:00", 4)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed booking failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/studios/"+studioID.String()+"/availability?date=2026-03-14", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var envelope struct {
		Data AvailabilityResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(envelope.Data.OccupiedSlots) != 2 {
		t.Fatalf("occupied = %v, want the 22:00 and 23:00 slots", envelope.Data.OccupiedSlots)
	}
}

func TestAvailabilityRejectsBadDate(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})
	router := testRouter(NewHandler(svc), uuid.New())

	for _, query := range []string{"", "?date=14-03-2026", "?date=soon"} {
		req := httptest.NewRequest(http.MethodGet, "/studios/"+studioID.String()+"/availability"+query, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestAvailabilityFailOpenReturnsEmptySet(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})
	router := testRouter(NewHandler(svc), uuid.New())

	repo.listErr = errors.New("connection reset")
	req := httptest.NewRequest(http.MethodGet, "/studios/"+studioID.String()+"/availability?date=2026-03-14", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (fail-open)", rec.Code)
	}

	var envelope struct {
		Data AvailabilityResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(envelope.Data.OccupiedSlots) != 0 {
		t.Fatalf("occupied = %v, want empty", envelope.Data.OccupiedSlots)
	}
}

func TestGetBookingOwnership(t *testing.T) {
	repo := newFakeRepo()
	studios, studioID := activeStudio(2500)
	svc, _ := newTestService(repo, studios, Config{})

	owner := uuid.New()
	b, _, err := svc.Reserve(context.Background(), owner, reserveReq(studioID, "2026-03-14", "14:00", 1))
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	// Owner sees it
	router := testRouter(NewHandler(svc), owner)
	req := httptest.NewRequest(http.MethodGet, "/bookings/"+b.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner: status = %d, want 200", rec.Code)
	}

	// Someone else does not
	router = testRouter(NewHandler(svc), uuid.New())
	req = httptest.NewRequest(http.MethodGet, "/bookings/"+b.ID.String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger: status = %d, want 403", rec.Code)
	}
}
