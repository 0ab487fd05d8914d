package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopsave/auth"
	"coopsave/entity"
)

// Routing, validation and auth guards never reach the database, so these
// tests run against an engine wired with a nil handle.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, nil)
	return r
}

func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
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

func signToken(t *testing.T, scope entity.Role) string {
	t.Helper()
	token, err := auth.SignToken(uuid.New(), scope)
	require.NoError(t, err)
	return token
}

func TestLivenessEndpoints(t *testing.T) {
	r := newTestEngine(t)

	rec := performRequest(r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"up":true}`, rec.Body.String())

	rec = performRequest(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestEngine(t)
	rec := performRequest(r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteIs404Envelope(t *testing.T) {
	r := newTestEngine(t)
	rec := performRequest(r, http.MethodPost, "/api/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.0.0", body["version"])
	assert.NotEmpty(t, body["error"])
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	r := newTestEngine(t)
	for _, path := range []string{"/api/v1/loans", "/api/v1/payments", "/api/v1/contributions", "/api/v1/profit-shares"} {
		rec := performRequest(r, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestProtectedRoutesRejectBadToken(t *testing.T) {
	r := newTestEngine(t)
	rec := performRequest(r, http.MethodGet, "/api/v1/loans", nil, "this-is-not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateUserValidation(t *testing.T) {
	r := newTestEngine(t)
	// missing email and termAccepted
	payload := `{"firstName":"Ada","lastName":"Obi","password":"secret1","phone":"+23480000"}`
	rec := performRequest(r, http.MethodPost, "/api/v1/users", bytes.NewBufferString(payload), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// short password
	payload = `{"firstName":"Ada","lastName":"Obi","password":"ab","email":"ada@example.com","phone":"+23480000","termAccepted":true}`
	rec = performRequest(r, http.MethodPost, "/api/v1/users", bytes.NewBufferString(payload), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateLoanValidation(t *testing.T) {
	r := newTestEngine(t)
	token := signToken(t, entity.RoleUser)
	due := time.Now().Add(90 * 24 * time.Hour).Format(time.RFC3339)

	// below minimum amount
	payload := fmt.Sprintf(`{"beneficiaryId":%q,"cooperativeId":%q,"amount":50,"dueDate":%q}`,
		uuid.NewString(), uuid.NewString(), due)
	rec := performRequest(r, http.MethodPost, "/api/v1/loans", bytes.NewBufferString(payload), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// past due date
	past := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	payload = fmt.Sprintf(`{"beneficiaryId":%q,"cooperativeId":%q,"amount":500,"dueDate":%q}`,
		uuid.NewString(), uuid.NewString(), past)
	rec = performRequest(r, http.MethodPost, "/api/v1/loans", bytes.NewBufferString(payload), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// bad repayment period
	payload = fmt.Sprintf(`{"beneficiaryId":%q,"cooperativeId":%q,"amount":500,"dueDate":%q,"repaymentPeriod":"45days"}`,
		uuid.NewString(), uuid.NewString(), due)
	rec = performRequest(r, http.MethodPost, "/api/v1/loans", bytes.NewBufferString(payload), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// invalid beneficiary uuid
	payload = fmt.Sprintf(`{"beneficiaryId":"nope","cooperativeId":%q,"amount":500,"dueDate":%q}`,
		uuid.NewString(), due)
	rec = performRequest(r, http.MethodPost, "/api/v1/loans", bytes.NewBufferString(payload), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidStatusRejected(t *testing.T) {
	r := newTestEngine(t)
	token := signToken(t, entity.RoleUser)
	payload := fmt.Sprintf(`{"payeeId":%q,"payerId":%q,"amount":25.50,"status":"BOGUS"}`,
		uuid.NewString(), uuid.NewString())
	rec := performRequest(r, http.MethodPost, "/api/v1/payments", bytes.NewBufferString(payload), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidIDParamRejected(t *testing.T) {
	r := newTestEngine(t)
	token := signToken(t, entity.RoleUser)
	rec := performRequest(r, http.MethodGet, "/api/v1/payments/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodDelete, "/api/v1/users/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfitShareScopeGuard(t *testing.T) {
	r := newTestEngine(t)

	// USER scope cannot mutate profit shares
	userToken := signToken(t, entity.RoleUser)
	rec := performRequest(r, http.MethodPost, "/api/v1/profit-shares", bytes.NewBufferString(`{}`), userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = performRequest(r, http.MethodDelete, "/api/v1/profit-shares/"+uuid.NewString(), nil, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// COOP_ADMIN passes the guard and fails on payload validation instead
	adminToken := signToken(t, entity.RoleCoopAdmin)
	rec = performRequest(r, http.MethodPost, "/api/v1/profit-shares", bytes.NewBufferString(`{}`), adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPaginationBoundsRejected(t *testing.T) {
	r := newTestEngine(t)
	token := signToken(t, entity.RoleUser)
	for _, query := range []string{"page=0", "limit=0", "limit=101"} {
		rec := performRequest(r, http.MethodGet, "/api/v1/loans?"+query, nil, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %s", query)
	}
}
