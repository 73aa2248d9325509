package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/service"
	"github.com/pageza/nutrilens/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func photoRequest(t *testing.T, contentType string, name string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="lunch.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	if name != "" {
		require.NoError(t, form.WriteField("name", name))
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/meals/analyze", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func TestAnalyzeMeal(t *testing.T) {
	a := setupTestAPI(t)
	mealID := uuid.New()
	a.meals.On("Analyze", mock.Anything, a.userID, mock.MatchedBy(func(u service.MealUpload) bool {
		return u.Body != nil &&
			u.Filename == "lunch.jpg" && u.ContentType == "image/jpeg" && u.Name == "Lunch"
	})).Return(&types.MealAnalysis{MealID: mealID, Name: "Lunch", Calories: 420}, nil).Once()

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, photoRequest(t, "image/jpeg", "Lunch"))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, mealID.String(), body["meal_id"])
	assert.Equal(t, float64(420), body["calories"])
}

func TestAnalyzeMealRejectsNonImage(t *testing.T) {
	a := setupTestAPI(t)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, photoRequest(t, "text/plain", ""))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	a.meals.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeMealRequiresPhoto(t *testing.T) {
	a := setupTestAPI(t)
	w := a.PerformRequest(http.MethodPost, "/api/v1/meals/analyze", map[string]string{"name": "Lunch"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMeals(t *testing.T) {
	a := setupTestAPI(t)
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	a.meals.On("ListMeals", mock.Anything, a.userID, day).Return([]models.Meal{
		{ID: uuid.New(), Name: "Grilled Chicken Salad", Calories: 420, EatenAt: day.Add(12 * time.Hour)},
	}, nil).Once()

	w := a.PerformRequest(http.MethodGet, "/api/v1/meals?day=2024-06-15", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "2024-06-15", body["day"])
	assert.Len(t, body["meals"], 1)
}

func TestListMealsBadDay(t *testing.T) {
	a := setupTestAPI(t)
	w := a.PerformRequest(http.MethodGet, "/api/v1/meals?day=15/06/2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboard(t *testing.T) {
	a := setupTestAPI(t)
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	a.dashboard.On("Dashboard", mock.Anything, a.userID, day).Return(&types.Dashboard{
		Day:       "2024-06-15",
		Calories:  types.Progress{Consumed: 420, Target: 2100, Ratio: 0.2},
		MealCount: 1,
	}, nil).Once()

	w := a.PerformRequest(http.MethodGet, "/api/v1/dashboard?day=2024-06-15", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["meal_count"])
}

func TestDashboardBeforeOnboarding(t *testing.T) {
	a := setupTestAPI(t)
	a.dashboard.On("Dashboard", mock.Anything, a.userID, mock.Anything).Return(nil, onboarding.ErrProfileNotFound).Once()

	w := a.PerformRequest(http.MethodGet, "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	a := setupTestAPI(t)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}
