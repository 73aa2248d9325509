package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister(t *testing.T) {
	a := setupTestAPI(t)
	user := &models.User{ID: uuid.New(), Email: "sam@example.com"}
	a.auth.On("Register", mock.Anything, "sam@example.com", "Passw0rd!").Return(user, nil).Once()
	a.auth.On("GenerateToken", mock.Anything).Return("signed", nil).Once()

	w := a.PerformRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "sam@example.com", "password": "Passw0rd!",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "signed", body["token"])
	assert.Equal(t, user.ID.String(), body["user_id"])
	a.auth.AssertExpectations(t)
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"weak password", service.ErrWeakPassword, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := setupTestAPI(t)
			a.auth.On("Register", mock.Anything, "sam@example.com", "password").Return(nil, tt.err).Once()

			w := a.PerformRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
				"email": "sam@example.com", "password": "password",
			})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.err.Error(), decodeBody(t, w)["error"])
		})
	}
}

func TestRegisterInvalidBody(t *testing.T) {
	a := setupTestAPI(t)
	w := a.PerformRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	a.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	a := setupTestAPI(t)
	user := &models.User{ID: uuid.New(), Email: "sam@example.com"}
	a.auth.On("Login", mock.Anything, "sam@example.com", "Passw0rd!").Return(user, nil).Once()
	a.auth.On("GenerateToken", mock.Anything).Return("signed", nil).Once()
	a.profiles.On("OnboardingComplete", mock.Anything, user.ID).Return(true, nil).Once()

	w := a.PerformRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "sam@example.com", "password": "Passw0rd!",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "signed", body["token"])
	assert.Equal(t, true, body["onboarding_complete"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	a := setupTestAPI(t)
	a.auth.On("Login", mock.Anything, "sam@example.com", "wrong").Return(nil, service.ErrInvalidCredentials).Once()

	w := a.PerformRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "sam@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", decodeBody(t, w)["error"])
}
