package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/mocks"
	"github.com/pageza/nutrilens/backend/internal/types"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router     *gin.Engine
	userID     uuid.UUID
	auth       *mocks.MockAuthService
	profiles   *mocks.MockProfileService
	onboarding *mocks.MockOnboardingService
	meals      *mocks.MockMealService
	dashboard  *mocks.MockDashboardService
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &testAPI{
		router:     gin.New(),
		userID:     uuid.New(),
		auth:       new(mocks.MockAuthService),
		profiles:   new(mocks.MockProfileService),
		onboarding: new(mocks.MockOnboardingService),
		meals:      new(mocks.MockMealService),
		dashboard:  new(mocks.MockDashboardService),
	}
	a.auth.On("ValidateToken", "test-token").
		Return(&types.TokenClaims{UserID: a.userID, Email: "sam@example.com"}, nil).Maybe()

	RegisterRoutes(a.router, Services{
		Auth:       a.auth,
		Profiles:   a.profiles,
		Onboarding: a.onboarding,
		Meals:      a.meals,
		Dashboard:  a.dashboard,
	})

	t.Cleanup(func() {
		a.onboarding.AssertExpectations(t)
		a.meals.AssertExpectations(t)
		a.dashboard.AssertExpectations(t)
		a.profiles.AssertExpectations(t)
	})
	return a
}

// PerformRequest sends an authenticated JSON request.
func (a *testAPI) PerformRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer test-token")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
