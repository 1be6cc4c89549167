package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/schemadoc/internal/api/shared"
	"github.com/phrazzld/schemadoc/internal/auth"
	"github.com/stretchr/testify/assert"
)

// stubJWTService validates only the token "good".
type stubJWTService struct {
	err error
}

func (s *stubJWTService) GenerateToken(context.Context, string, time.Duration) (string, error) {
	return "good", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token != "good" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{Subject: "ops"}, nil
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		serviceErr  error
		wantStatus  int
		wantSubject string
	}{
		{
			name:        "valid token",
			header:      "Bearer good",
			wantStatus:  http.StatusOK,
			wantSubject: "ops",
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing scheme",
			header:     "good",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer good",
			serviceErr: auth.ErrExpiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected failure",
			header:     "Bearer good",
			serviceErr: errors.New("keystore unavailable"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = shared.GetSubject(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			mw := NewAuthMiddleware(&stubJWTService{err: tt.serviceErr})
			req := httptest.NewRequest(http.MethodGet, "/api/anything", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSubject, gotSubject)
		})
	}
}
