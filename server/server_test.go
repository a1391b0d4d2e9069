package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/zai/internal/profile"
)

func TestNewServer_Routes(t *testing.T) {
	s, err := NewServer(context.Background(), &profile.Profile{Mode: "prod", Port: profile.DefaultPort})
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/api/chat", "", http.StatusOK},
		{http.MethodPost, "/api/chat", `{"message":"cek target hari ini"}`, http.StatusOK},
		{http.MethodPost, "/api/chat", `{"message":""}`, http.StatusBadRequest},
		{http.MethodGet, "/api/chat/metrics", "", http.StatusOK},
		{http.MethodGet, "/unknown", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestNewServer_CORSPreflight(t *testing.T) {
	s, err := NewServer(context.Background(), &profile.Profile{Mode: "dev", Port: profile.DefaultPort})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
