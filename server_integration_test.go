package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"coopsave/handler"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	// allow callers to pass nil for body safely
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	db := setupDatabase(zerolog.Nop())
	r := gin.New()
	handler.Register(r, db)
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %s", rec.Body.String())
	}
	return data
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)
	stamp := time.Now().UnixNano()

	// 1. Create a user; the coop admin membership gives the token enough scope
	// for the profit-share routes later.
	email := fmt.Sprintf("flow%d@example.com", stamp)
	userBody := map[string]any{
		"firstName":    "Flow",
		"lastName":     "Tester",
		"password":     "secret123",
		"email":        email,
		"phone":        "+2348000000",
		"termAccepted": true,
		"memberOf": []map[string]any{
			{"cooperativeId": "00000000-0000-0000-0000-000000000001", "role": "COOP_ADMIN", "joinedAt": time.Now().Format(time.RFC3339)},
		},
	}
	resp := performRequest(r, http.MethodPost, "/api/v1/users", jsonBody(t, userBody), "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create user failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	user := dataField(t, resp)
	if user["status"] != "PENDING" {
		t.Fatalf("expected new user status PENDING got %v", user["status"])
	}
	userID, _ := user["id"].(string)
	if userID == "" {
		t.Fatalf("user id missing in response: %s", resp.Body.String())
	}

	// 2. Duplicate email is a conflict
	resp = performRequest(r, http.MethodPost, "/api/v1/users", jsonBody(t, userBody), "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email got %d body=%s", resp.Code, resp.Body.String())
	}

	// 3. Login
	resp = performRequest(r, http.MethodPost, "/api/v1/auth/login", jsonBody(t, map[string]string{
		"email":    email,
		"password": "secret123",
	}), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	token, _ := dataField(t, resp)["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %s", resp.Body.String())
	}

	// 4. Wrong password is rejected
	resp = performRequest(r, http.MethodPost, "/api/v1/auth/login", jsonBody(t, map[string]string{
		"email":    email,
		"password": "wrong-password",
	}), "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password got %d", resp.Code)
	}

	// 5. Create a cooperative
	resp = performRequest(r, http.MethodPost, "/api/v1/cooperatives", jsonBody(t, map[string]any{
		"name":          fmt.Sprintf("Flow Coop %d", stamp),
		"contactPerson": "Flow Tester",
		"creator":       userID,
		"description":   "integration flow cooperative",
	}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create cooperative failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	coopID, _ := dataField(t, resp)["id"].(string)
	if coopID == "" {
		t.Fatalf("cooperative id missing: %s", resp.Body.String())
	}

	// 6. Create a loan and check the defaults round-trip
	due := time.Now().Add(180 * 24 * time.Hour).Format(time.RFC3339)
	resp = performRequest(r, http.MethodPost, "/api/v1/loans", jsonBody(t, map[string]any{
		"beneficiaryId": userID,
		"cooperativeId": coopID,
		"amount":        500,
		"dueDate":       due,
	}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create loan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	loan := dataField(t, resp)
	if loan["status"] != "PENDING" {
		t.Fatalf("expected loan status PENDING got %v", loan["status"])
	}
	if amt, _ := loan["amount"].(float64); amt != 500 {
		t.Fatalf("expected loan amount 500 got %v", loan["amount"])
	}
	loanID, _ := loan["id"].(string)

	// 7. A repayment on the loan blocks deletion
	resp = performRequest(r, http.MethodPost, "/api/v1/repayments", jsonBody(t, map[string]any{
		"payeeId": userID,
		"payerId": userID,
		"amount":  50,
		"dueDate": due,
		"loanId":  loanID,
	}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create repayment failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	repaymentID, _ := dataField(t, resp)["id"].(string)

	resp = performRequest(r, http.MethodDelete, "/api/v1/loans/"+loanID, nil, token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 deleting loan with repayments got %d body=%s", resp.Code, resp.Body.String())
	}
	// the loan row is untouched
	resp = performRequest(r, http.MethodGet, "/api/v1/loans/"+loanID, nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("loan should survive a blocked delete, got %d", resp.Code)
	}

	// 8. Soft-deleting the repayment frees the loan; repeats are 404
	resp = performRequest(r, http.MethodDelete, "/api/v1/repayments/"+repaymentID, nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete repayment failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodDelete, "/api/v1/repayments/"+repaymentID, nil, token)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second repayment delete got %d", resp.Code)
	}

	// Dependent count looks at live rows only, so the loan is deletable now
	resp = performRequest(r, http.MethodDelete, "/api/v1/loans/"+loanID, nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete loan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/v1/loans/"+loanID, nil, token)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 fetching deleted loan got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodDelete, "/api/v1/loans/"+loanID, nil, token)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second loan delete got %d", resp.Code)
	}

	// 9. Profit-share mutations need the admin scope carried by this token
	resp = performRequest(r, http.MethodPost, "/api/v1/profit-shares", jsonBody(t, map[string]any{
		"period":        time.Now().Format(time.RFC3339),
		"userId":        userID,
		"cooperativeId": coopID,
		"amount":        75.25,
	}), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create profit share failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 10. Unauthorized access to a protected endpoint is 401
	unauth := performRequest(r, http.MethodGet, "/api/v1/loans", nil, "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized loan list got %d", unauth.Code)
	}
}

func TestCooperativePagination(t *testing.T) {
	r := setupTestServer(t)
	stamp := time.Now().UnixNano()

	// bootstrap an admin user for a token
	email := fmt.Sprintf("pager%d@example.com", stamp)
	resp := performRequest(r, http.MethodPost, "/api/v1/users", jsonBody(t, map[string]any{
		"firstName":    "Page",
		"lastName":     "Tester",
		"password":     "secret123",
		"email":        email,
		"phone":        "+2348000001",
		"termAccepted": true,
	}), "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create user failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/api/v1/auth/login", jsonBody(t, map[string]string{
		"email": email, "password": "secret123",
	}), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	token, _ := dataField(t, resp)["token"].(string)

	meta := func(rec *httptest.ResponseRecorder) (total, totalPages float64, items []any) {
		body := decodeEnvelope(t, rec)
		m, ok := body["meta"].(map[string]any)
		if !ok {
			t.Fatalf("list response has no meta: %s", rec.Body.String())
		}
		items, _ = body["data"].([]any)
		total, _ = m["total"].(float64)
		totalPages, _ = m["totalPages"].(float64)
		return total, totalPages, items
	}

	resp = performRequest(r, http.MethodGet, "/api/v1/cooperatives?limit=5", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("list cooperatives failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	before, _, _ := meta(resp)

	for i := 0; i < 12; i++ {
		resp = performRequest(r, http.MethodPost, "/api/v1/cooperatives", jsonBody(t, map[string]any{
			"name":          fmt.Sprintf("Page Coop %d-%d", stamp, i),
			"contactPerson": "Page Tester",
			"creator":       email,
		}), token)
		if resp.Code != http.StatusCreated {
			t.Fatalf("create cooperative %d failed status=%d body=%s", i, resp.Code, resp.Body.String())
		}
	}

	resp = performRequest(r, http.MethodGet, "/api/v1/cooperatives?page=2&limit=5", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("paged list failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	total, totalPages, items := meta(resp)
	want := before + 12
	if total != want {
		t.Fatalf("expected total %v got %v", want, total)
	}
	wantPages := float64(int(total+4) / 5)
	if totalPages != wantPages {
		t.Fatalf("expected totalPages %v for total %v got %v", wantPages, total, totalPages)
	}
	if len(items) != 5 {
		t.Fatalf("expected a full page of 5 items got %d", len(items))
	}
}
