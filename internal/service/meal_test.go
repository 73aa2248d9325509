package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/nutrition"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPhotoStore struct {
	keys        []string
	contentType string
	body        string
}

func (r *recordingPhotoStore) Put(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	r.keys = append(r.keys, key)
	r.contentType = contentType
	r.body = string(data)
	return "https://photos.test/" + key, nil
}

func TestAnalyzeMealStoresPhotoAndLogsMeal(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	photos := &recordingPhotoStore{}
	svc := NewMealService(db, SimulatedAnalyzer{}, photos)
	svc.now = testClock
	userID := createUser(t, db)

	analysis, err := svc.Analyze(context.Background(), userID, MealUpload{
		Filename:    "lunch.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, analysis.MealID)
	assert.Equal(t, "Grilled Chicken Salad", analysis.Name)
	assert.Equal(t, 420, analysis.Calories)
	assert.Equal(t, 92, analysis.Confidence)
	assert.Len(t, analysis.Micronutrients, 3)
	assert.Len(t, analysis.Ingredients, 4)

	require.Len(t, photos.keys, 1)
	assert.True(t, strings.HasPrefix(photos.keys[0], "meal-photos/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(photos.keys[0], ".jpg"))
	assert.Equal(t, "image/jpeg", photos.contentType)
	assert.Equal(t, "jpeg-bytes", photos.body)
	assert.Equal(t, "https://photos.test/"+photos.keys[0], analysis.PhotoURL)

	meals, err := svc.ListMeals(context.Background(), userID, testClock())
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, analysis.MealID, meals[0].ID)
	assert.Equal(t, 28.0, meals[0].Protein)
	assert.Equal(t, analysis.PhotoURL, meals[0].PhotoURL)
}

func TestAnalyzeMealWithoutPhotoStore(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewMealService(db, SimulatedAnalyzer{}, nil)
	userID := createUser(t, db)

	analysis, err := svc.Analyze(context.Background(), userID, MealUpload{
		Name: "Oatmeal",
		Body: strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Oatmeal", analysis.Name)
	assert.Empty(t, analysis.PhotoURL)
}

func TestListMealsByDay(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewMealService(db, SimulatedAnalyzer{}, nil)
	userID := createUser(t, db)
	otherUser := createUser(t, db)
	ctx := context.Background()

	day := testClock()
	for _, at := range []time.Time{
		day.Add(3 * time.Hour),
		day.Add(-9 * time.Hour),
		day.Add(-10 * time.Hour),
		day.Add(15 * time.Hour),
	} {
		_, err := svc.Analyze(ctx, userID, MealUpload{EatenAt: at})
		require.NoError(t, err)
	}
	_, err := svc.Analyze(ctx, otherUser, MealUpload{EatenAt: day})
	require.NoError(t, err)

	meals, err := svc.ListMeals(ctx, userID, day)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.True(t, meals[0].EatenAt.Before(meals[1].EatenAt))
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	start, end := dayBounds(time.Date(2024, 6, 15, 22, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), end)
}

func TestDashboard(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	profiles := NewProfileService(db)
	meals := NewMealService(db, SimulatedAnalyzer{}, nil)
	svc := NewDashboardService(db, profiles)
	userID := createUser(t, db)
	ctx := context.Background()

	_, err := svc.Dashboard(ctx, userID, testClock())
	assert.ErrorIs(t, err, onboarding.ErrProfileNotFound)

	require.NoError(t, profiles.UpsertProfile(ctx, sampleProfile(userID)))
	for i := 0; i < 2; i++ {
		_, err := meals.Analyze(ctx, userID, MealUpload{EatenAt: testClock().Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}
	_, err = meals.Analyze(ctx, userID, MealUpload{EatenAt: testClock().AddDate(0, 0, -1)})
	require.NoError(t, err)

	dash, err := svc.Dashboard(ctx, userID, testClock())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", dash.Day)
	assert.Equal(t, 2, dash.MealCount)

	assert.Equal(t, 1641.0, dash.Calories.Target)
	assert.Equal(t, 840.0, dash.Calories.Consumed)
	assert.InDelta(t, 840.0/1641.0, dash.Calories.Ratio, 1e-9)

	assert.Equal(t, 82.0, dash.Protein.Target)
	assert.Equal(t, 56.0, dash.Protein.Consumed)
	assert.Equal(t, 205.0, dash.Carbs.Target)
	assert.Equal(t, 70.0, dash.Carbs.Consumed)
	assert.Equal(t, 55.0, dash.Fat.Target)
	assert.Equal(t, 36.0, dash.Fat.Consumed)
}

func TestDashboardEmptyDay(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	profiles := NewProfileService(db)
	svc := NewDashboardService(db, profiles)
	userID := createUser(t, db)
	require.NoError(t, profiles.UpsertProfile(context.Background(), sampleProfile(userID)))

	dash, err := svc.Dashboard(context.Background(), userID, testClock())
	require.NoError(t, err)
	assert.Zero(t, dash.MealCount)
	assert.Zero(t, dash.Calories.Consumed)
	assert.Zero(t, dash.Calories.Ratio)
}

func TestDashboardUsesAgeOnRequestedDay(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	profiles := NewProfileService(db)
	svc := NewDashboardService(db, profiles)
	userID := createUser(t, db)
	p := sampleProfile(userID)
	require.NoError(t, profiles.UpsertProfile(context.Background(), p))

	nextYear := testClock().AddDate(1, 0, 0)
	dash, err := svc.Dashboard(context.Background(), userID, nextYear)
	require.NoError(t, err)

	older := p
	older.Age = 35
	assert.Equal(t, float64(nutrition.For(older).Calories), dash.Calories.Target)
	assert.NotEqual(t, 1641.0, dash.Calories.Target)
}
