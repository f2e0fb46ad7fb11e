package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sichrplace/discovery/internal/domain"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentityMiddleware_EmptyKeys_PassThrough(t *testing.T) {
	mw := IdentityMiddleware(nil)
	handler := mw(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/listings/search", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("empty keys: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestIdentityMiddleware_EmptyTokenIgnored(t *testing.T) {
	mw := IdentityMiddleware(map[string]string{"": "ghost"})
	handler := mw(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/listings/search", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("empty token keys: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestIdentityMiddleware_MissingHeader_401(t *testing.T) {
	mw := IdentityMiddleware(map[string]string{"secret": "alice"})
	handler := mw(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/listings/search", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeBadRequest {
		t.Errorf("code = %s", errResp.Code)
	}
}

func TestIdentityMiddleware_WrongScheme_401(t *testing.T) {
	mw := IdentityMiddleware(map[string]string{"secret": "alice"})
	handler := mw(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/listings/search", http.NoBody)
	req.Header.Set("Authorization", "Basic c2VjcmV0")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestIdentityMiddleware_InvalidToken_401(t *testing.T) {
	mw := IdentityMiddleware(map[string]string{"secret": "alice"})
	handler := mw(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/listings/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer wrong")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("invalid token: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestIdentityMiddleware_ValidToken_AttachesIdentity(t *testing.T) {
	mw := IdentityMiddleware(map[string]string{"secret": "alice"})

	var actor string
	var found bool
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, found = domain.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/listings/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("valid token: got %d, want %d", rr.Code, http.StatusOK)
	}
	if !found || actor != "alice" {
		t.Errorf("identity = %q (found=%v), want alice", actor, found)
	}
}

func TestIdentityMiddleware_HealthExempt(t *testing.T) {
	mw := IdentityMiddleware(map[string]string{"secret": "alice"})
	handler := mw(okHandler())

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("health exempt: got %d, want %d", rr.Code, http.StatusOK)
	}
}
