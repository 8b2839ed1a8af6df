package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loadboard/internal/audit"
	"loadboard/internal/loads"
	"loadboard/internal/reporting"

	"github.com/gin-gonic/gin"
)

func newTestRouter() (*gin.Engine, Handlers) {
	gin.SetMode(gin.TestMode)

	repo := loads.NewMemoryRepo()
	auditSvc := audit.NewService(audit.NewMemoryRepo())
	h := Handlers{
		Loads:     loads.NewService(repo, auditSvc),
		Reporting: reporting.NewService(repo),
		Audit:     auditSvc,
	}

	r := gin.New()
	r.GET("/health", h.Health)

	s := r.Group("/shipments")
	s.POST("", h.CreateShipment)
	s.GET("", h.ListShipments)
	s.GET("/stats", h.GetShipmentStats)
	s.GET("/random", h.GetRandomShipment)
	s.GET("/:id", h.GetShipment)
	s.PATCH("/:id", h.UpdateShipment)
	s.PATCH("/:id/manual", h.UpdateShipmentManual)
	s.DELETE("/:id", h.DeleteShipment)
	s.POST("/:id/phone-calls", h.CreatePhoneCall)
	s.GET("/:id/phone-calls", h.ListShipmentPhoneCalls)
	s.DELETE("/:id/phone-calls", h.DeleteShipmentPhoneCalls)

	r.GET("/phone-calls", h.ListPhoneCalls)
	r.GET("/audit/events", h.ListAuditEvents)
	return r, h
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func shipmentBody(loadID string) map[string]any {
	return map[string]any{
		"load_id":           loadID,
		"origin":            "Chicago, IL",
		"destination":       "Denver, CO",
		"pickup_datetime":   "2026-03-01T08:00:00Z",
		"delivery_datetime": "2026-03-02T14:00:00Z",
		"equipment_type":    "Dry Van",
		"loadboard_rate":    450.0,
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode[map[string]any](t, w)
	if body["status"] != "healthy" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateShipment_LifecycleScenario(t *testing.T) {
	r, _ := newTestRouter()

	// Create arrives through the API channel.
	w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode[loads.Load](t, w)
	if created.Status != loads.StatusPending || !created.AssignedViaURL {
		t.Fatalf("expected pending url_api shipment, got %+v", created)
	}

	// Manual PATCH flips the channel and settles the deal.
	patch := map[string]any{
		"status":              "agreed",
		"agreed_price":        500.0,
		"carrier_description": "ACME Trucking",
	}
	w = doJSON(t, r, http.MethodPatch, "/shipments/LD-1/manual", patch)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decode[loads.Load](t, w)
	if updated.Status != loads.StatusAgreed || updated.AssignedViaURL {
		t.Fatalf("expected agreed manual shipment, got %+v", updated)
	}
	if updated.AgreedPrice == nil || *updated.AgreedPrice != 500 {
		t.Fatalf("expected agreed_price 500, got %+v", updated.AgreedPrice)
	}

	// Lookup works by either identifier.
	w = doJSON(t, r, http.MethodGet, "/shipments/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 by uuid, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/shipments/LD-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 by load_id, got %d", w.Code)
	}
}

func TestCreateShipment_ValidationFailure(t *testing.T) {
	r, _ := newTestRouter()

	body := shipmentBody("LD-1")
	body["delivery_datetime"] = "2026-02-01T08:00:00Z" // before pickup
	w := doJSON(t, r, http.MethodPost, "/shipments", body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[map[string]any](t, w)
	fields, ok := resp["fields"].(map[string]any)
	if !ok {
		t.Fatalf("expected fields map, got %v", resp)
	}
	if _, ok := fields["delivery_datetime"]; !ok {
		t.Fatalf("expected delivery_datetime error, got %v", fields)
	}
}

func TestCreateShipment_DuplicateConflict(t *testing.T) {
	r, _ := newTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1")); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetShipment_NotFound(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/shipments/LD-missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp := decode[map[string]any](t, w)
	if resp["error"] != "shipment not found" {
		t.Fatalf("unexpected error body: %v", resp)
	}
}

func TestListShipments_FiltersAndSort(t *testing.T) {
	r, _ := newTestRouter()

	for i, id := range []string{"LD-1", "LD-2", "LD-3"} {
		body := shipmentBody(id)
		body["loadboard_rate"] = float64(100 * (i + 1))
		if w := doJSON(t, r, http.MethodPost, "/shipments", body); w.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d", id, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/shipments?sort_by=loadboard_rate&sort_order=desc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	ls := decode[[]loads.Load](t, w)
	if len(ls) != 3 || ls[0].LoadID != "LD-3" {
		t.Fatalf("expected rate-desc order, got %+v", ls)
	}

	w = doJSON(t, r, http.MethodGet, "/shipments?q=ld-2", nil)
	ls = decode[[]loads.Load](t, w)
	if len(ls) != 1 || ls[0].LoadID != "LD-2" {
		t.Fatalf("expected free-text narrowing, got %+v", ls)
	}
}

func TestListShipments_BadQueryParam(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/shipments?status=shipped", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown status, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/shipments?pickup_from=yesterday", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad timestamp, got %d", w.Code)
	}
}

func TestDeleteShipment(t *testing.T) {
	r, _ := newTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1")); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodDelete, "/shipments/LD-1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/shipments/LD-1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestPhoneCalls_EndToEnd(t *testing.T) {
	r, _ := newTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1")); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	// String-typed payload from the legacy UI.
	call := map[string]any{
		"agreed":    "True",
		"seconds":   "750",
		"call_type": "manual",
	}
	w := doJSON(t, r, http.MethodPost, "/shipments/LD-1/phone-calls", call)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode[loads.PhoneCall](t, w)
	if !created.Agreed || created.Seconds != 750 || created.Sentiment != loads.SentimentNeutral {
		t.Fatalf("unexpected call: %+v", created)
	}

	w = doJSON(t, r, http.MethodGet, "/shipments/LD-1/phone-calls", nil)
	calls := decode[[]loads.PhoneCall](t, w)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}

	w = doJSON(t, r, http.MethodDelete, "/shipments/LD-1/phone-calls", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[map[string]any](t, w)
	if resp["deleted"] != float64(1) {
		t.Fatalf("expected deleted=1, got %v", resp)
	}

	w = doJSON(t, r, http.MethodPost, "/shipments/LD-missing/phone-calls", call)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown shipment, got %d", w.Code)
	}
}

func TestListPhoneCalls_GlobalWithFilters(t *testing.T) {
	r, _ := newTestRouter()

	for _, id := range []string{"LD-1", "LD-2"} {
		if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody(id)); w.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d", id, w.Code)
		}
	}
	doJSON(t, r, http.MethodPost, "/shipments/LD-1/phone-calls", map[string]any{"seconds": 60, "call_type": "manual"})
	doJSON(t, r, http.MethodPost, "/shipments/LD-2/phone-calls", map[string]any{"seconds": 90, "call_type": "agent", "agreed": true})

	w := doJSON(t, r, http.MethodGet, "/phone-calls", nil)
	calls := decode[[]loads.PhoneCall](t, w)
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}

	w = doJSON(t, r, http.MethodGet, "/phone-calls?call_type=agent&agreed=true", nil)
	calls = decode[[]loads.PhoneCall](t, w)
	if len(calls) != 1 || calls[0].CallType != loads.CallTypeAgent {
		t.Fatalf("expected one agent call, got %+v", calls)
	}
}

func TestGetShipmentStats(t *testing.T) {
	r, _ := newTestRouter()

	// One load per channel; the manual one settles at 500 over a 450 rate.
	if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1")); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}
	patch := map[string]any{
		"status":              "agreed",
		"agreed_price":        500.0,
		"carrier_description": "ACME Trucking",
	}
	if w := doJSON(t, r, http.MethodPatch, "/shipments/LD-1/manual", patch); w.Code != http.StatusOK {
		t.Fatalf("patch: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-2")); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/shipments/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	stats := decode[reporting.AssignmentStats](t, w)
	if stats.Manual.Count != 1 || stats.Manual.TotalAgreedPrice != 500 {
		t.Fatalf("unexpected manual group: %+v", stats.Manual)
	}
	if stats.Manual.TotalAgreedMinusLoadboard != 50 {
		t.Fatalf("expected margin 50, got %v", stats.Manual.TotalAgreedMinusLoadboard)
	}
	if stats.URLAPI.Count != 1 || stats.URLAPI.TotalAgreedPrice != 0 {
		t.Fatalf("unexpected url_api group: %+v", stats.URLAPI)
	}
}

func TestGetRandomShipment(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/shipments/random", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on empty store, got %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1")); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/shipments/random", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	l := decode[loads.Load](t, w)
	if l.LoadID != "LD-1" {
		t.Fatalf("unexpected shipment: %+v", l)
	}
}

func TestAuditEvents_TrackMutations(t *testing.T) {
	r, _ := newTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/shipments", shipmentBody("LD-1")); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/shipments/LD-1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/audit/events", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	events := decode[[]audit.Event](t, w)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != loads.ActionCreated || events[1].Action != loads.ActionDeleted {
		t.Fatalf("unexpected actions: %+v", events)
	}
	if events[0].LoadID != "LD-1" {
		t.Fatalf("expected load_id carried, got %+v", events[0])
	}
	for _, e := range events {
		if e.CreatedAt.After(time.Now().Add(time.Minute)) {
			t.Fatalf("implausible event timestamp: %v", e.CreatedAt)
		}
	}
}
