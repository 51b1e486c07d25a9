package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"transit-dashboard/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, wantOperator string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantOperator, GetOperator(r))
		w.WriteHeader(http.StatusOK)
	})
}

func newAuthFixture(t *testing.T) (*auth.JWTManager, string) {
	t.Helper()
	m, err := auth.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)
	hash, err := auth.HashAPIKey("admin-key")
	require.NoError(t, err)
	return m, hash
}

func TestAdminAuth(t *testing.T) {
	m, hash := newAuthFixture(t)
	adminToken, err := m.GenerateToken("ops", true)
	require.NoError(t, err)
	viewerToken, err := m.GenerateToken("viewer", false)
	require.NoError(t, err)

	tests := []struct {
		name     string
		headers  map[string]string
		status   int
		operator string
	}{
		{"api key", map[string]string{"X-Admin-Key": "admin-key"}, http.StatusOK, "api-key"},
		{"wrong api key", map[string]string{"X-Admin-Key": "nope"}, http.StatusForbidden, ""},
		{"admin token", map[string]string{"Authorization": "Bearer " + adminToken}, http.StatusOK, "ops"},
		{"non admin token", map[string]string{"Authorization": "Bearer " + viewerToken}, http.StatusForbidden, ""},
		{"bad token", map[string]string{"Authorization": "Bearer garbage"}, http.StatusUnauthorized, ""},
		{"malformed header", map[string]string{"Authorization": "Token " + adminToken}, http.StatusUnauthorized, ""},
		{"no credentials", nil, http.StatusUnauthorized, ""},
	}

	a := NewAdminAuth(m, hash, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/real-time-stats", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			a.Protect(okHandler(t, tt.operator)).ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
			if tt.status != http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"error"`)
			}
		})
	}
}

func TestAdminAuth_DisabledAndUnconfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rr := httptest.NewRecorder()
	NewAdminAuth(nil, "", false).Protect(okHandler(t, "")).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	NewAdminAuth(nil, "", true).Protect(okHandler(t, "")).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	_, hash := newAuthFixture(t)
	req.Header.Set("Authorization", "Bearer whatever")
	rr = httptest.NewRecorder()
	NewAdminAuth(nil, hash, true).Protect(okHandler(t, "")).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// a different port is the same client
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	req.RemoteAddr = "10.0.0.2:1234"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter_DropsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(idleLimiterTTL + time.Second)
	rl.getLimiter("b")

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "b")
}

type recorded struct {
	mu       sync.Mutex
	statuses []int
}

func (r *recorded) Record(status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func TestRequestLogger(t *testing.T) {
	rec := &recorded{}
	var seenID string
	h := NewRequestLogger(rec).Log(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r)
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ok", nil))
	_, err := uuid.Parse(seenID)
	assert.NoError(t, err)
	assert.Equal(t, seenID, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "given-id", seenID)

	assert.Equal(t, []int{http.StatusOK, http.StatusInternalServerError}, rec.statuses)
}
