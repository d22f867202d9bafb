package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskhub-api/internal/api/middleware"
	"github.com/phrazzld/taskhub-api/internal/mocks"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		setupMock  func(m *mocks.MockJWTService)
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid token reaches handler with identity",
			authHeader: "Bearer valid-token",
			setupMock: func(m *mocks.MockJWTService) {
				m.Claims = &auth.Claims{UserID: userID, Username: "alice"}
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bare token without scheme",
			authHeader: "just-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			setupMock: func(m *mocks.MockJWTService) {
				m.ValidationError = auth.ErrExpiredToken
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer tampered-token",
			setupMock: func(m *mocks.MockJWTService) {
				m.ValidationError = auth.ErrInvalidToken
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected validation failure",
			authHeader: "Bearer some-token",
			setupMock: func(m *mocks.MockJWTService) {
				m.ValidationError = errors.New("keystore unavailable")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			jwtService := mocks.NewMockJWTService()
			if tc.setupMock != nil {
				tc.setupMock(jwtService)
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				gotID, ok := middleware.GetUserID(r)
				require.True(t, ok, "authenticated request must carry a user ID")
				assert.Equal(t, userID, gotID)

				w.WriteHeader(http.StatusOK)
			})

			handler := middleware.NewAuthMiddleware(jwtService).Authenticate(next)

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantNext, nextCalled)
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	_, ok := middleware.GetUserID(req.WithContext(context.Background()))
	assert.False(t, ok)
}
