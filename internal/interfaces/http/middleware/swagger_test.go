package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        SwaggerConfig
		remoteAddr string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "disabled",
			cfg:        SwaggerConfig{Enabled: false},
			remoteAddr: "127.0.0.1:5000",
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "enabled without allow-list",
			cfg:        SwaggerConfig{Enabled: true},
			remoteAddr: "203.0.113.9:5000",
			wantStatus: http.StatusOK,
		},
		{
			name:       "exact ip allowed",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}},
			remoteAddr: "127.0.0.1:5000",
			wantStatus: http.StatusOK,
		},
		{
			name:       "cidr allowed",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}},
			remoteAddr: "10.20.30.40:5000",
			wantStatus: http.StatusOK,
		},
		{
			name:       "outside allow-list",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "127.0.0.1"}},
			remoteAddr: "192.168.1.10:5000",
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrCodeForbidden,
		},
		{
			name:       "malformed entries allow nobody",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"not-an-ip", "10.0.0.0/99"}},
			remoteAddr: "10.0.0.1:5000",
			wantStatus: http.StatusForbidden,
			wantCode:   dto.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/swagger/*any", SwaggerProtection(tt.cfg), func(c *gin.Context) {
				c.String(http.StatusOK, "docs")
			})

			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Contains(t, w.Body.String(), tt.wantCode)
			}
		})
	}
}
