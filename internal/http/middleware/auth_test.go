package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingToken(t *testing.T) {
	if w := doGet(authedRouter(), ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	if w := doGet(authedRouter(), "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := IssueToken(7, "user")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	w := doGet(authedRouter(), token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRolesRejectsCustomer(t *testing.T) {
	token, err := IssueToken(7, "user")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	w := doGet(authedRouter("staff", "admin"), token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer on staff route, got %d", w.Code)
	}
}

func TestRequireRolesAllowsStaff(t *testing.T) {
	token, err := IssueToken(3, "staff")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	w := doGet(authedRouter("staff", "admin"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", w.Code)
	}
}
