package router

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingModule struct{}

func (pingModule) Register(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestNew_RequestIDAndAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := New(logger)
	Mount(r, pingModule{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Body.String())
	}
	id := w.Header().Get(RequestIDHeader)
	if len(id) != 36 {
		t.Errorf("expected generated uuid, got %q", id)
	}
	if !strings.Contains(buf.String(), "path=/ping") || !strings.Contains(buf.String(), id) {
		t.Errorf("access log missing fields: %q", buf.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc" {
		t.Errorf("incoming request id not reused, got %q", got)
	}
}

func TestRegisterAndMountAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	saved := registrars
	t.Cleanup(func() { registrars = saved })
	registrars = nil

	Register(pingModule{})
	r := gin.New()
	MountAll(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("registered module not mounted, status %d", w.Code)
	}
}
