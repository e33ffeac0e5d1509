package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/datemate/internal/db"
	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSpots(t *testing.T, repo *SQLiteSpotRepo, spots ...domain.Spot) {
	t.Helper()
	for i := range spots {
		require.NoError(t, repo.Create(context.Background(), &spots[i]))
	}
}

func TestSpotRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSpotRepo(db)
	ctx := context.Background()

	spot := testutil.NewTestSpot("홍대 카페거리",
		testutil.WithAddress("홍대", "서울특별시 마포구 홍익로"),
		testutil.WithHours(map[string]string{"월": "08:00-24:00", "금": "08:00-02:00"}),
		testutil.WithNotes([]string{"독특한 카페", "젊은 분위기"}, []string{"주말엔 붐벼요"}),
	)
	spot.Parking = true
	require.NoError(t, repo.Create(ctx, &spot))

	fetched, err := repo.GetByID(ctx, spot.ID)
	require.NoError(t, err)
	assert.Equal(t, "홍대 카페거리", fetched.Name)
	assert.Equal(t, domain.CategoryCafe, fetched.Category)
	assert.Equal(t, "홍대", fetched.Location.Name)
	assert.InDelta(t, 37.5665, fetched.Location.Latitude, 1e-9)
	assert.Equal(t, domain.PriceMedium, fetched.PriceRange)
	assert.True(t, fetched.Parking)
	assert.Equal(t, map[string]string{"월": "08:00-24:00", "금": "08:00-02:00"}, fetched.OpeningHours)
	assert.Equal(t, []string{"독특한 카페", "젊은 분위기"}, fetched.Highlights)
	assert.Equal(t, []string{"주말엔 붐벼요"}, fetched.Tips)
}

func TestSpotRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSpotRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSpotRepo_CreateDuplicateFails(t *testing.T) {
	repo := NewSQLiteSpotRepo(testutil.NewTestDB(t))
	spot := testutil.NewTestSpot("경복궁")
	seedSpots(t, repo, spot)

	assert.Error(t, repo.Create(context.Background(), &spot))
}

func TestSpotRepo_UpsertReplacesDetails(t *testing.T) {
	repo := NewSQLiteSpotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	spot := testutil.NewTestSpot("감천문화마을",
		testutil.WithHours(map[string]string{"월": "09:00-18:00", "화": "09:00-18:00"}),
		testutil.WithNotes([]string{"알록달록"}, nil))
	require.NoError(t, repo.Upsert(ctx, &spot))

	spot.Rating = 4.8
	spot.OpeningHours = map[string]string{"수": "10:00-17:00"}
	spot.Highlights = nil
	require.NoError(t, repo.Upsert(ctx, &spot))

	fetched, err := repo.GetByID(ctx, spot.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.8, fetched.Rating)
	assert.Equal(t, map[string]string{"수": "10:00-17:00"}, fetched.OpeningHours)
	assert.Empty(t, fetched.Highlights)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSpotRepo_Search_Location(t *testing.T) {
	repo := NewSQLiteSpotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	seoul := testutil.NewTestSpot("경복궁", testutil.WithAddress("경복궁", "서울특별시 종로구 사직로 161"))
	busan := testutil.NewTestSpot("감천문화마을", testutil.WithAddress("감천문화마을", "부산광역시 사하구 감내2로 203"))
	busan.ID = "busan_002"
	seedSpots(t, repo, seoul, busan)

	got, err := repo.Search(ctx, SpotFilter{Location: "서울"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "경복궁", got[0].Name)

	// The id prefix matches too.
	got, err = repo.Search(ctx, SpotFilter{Location: "busan"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "busan_002", got[0].ID)

	got, err = repo.Search(ctx, SpotFilter{Location: "제주"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSpotRepo_Search_CategoryCostAndOrder(t *testing.T) {
	repo := NewSQLiteSpotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	palace := testutil.NewTestSpot("경복궁", testutil.WithCategory(domain.CategoryCulturalSite), testutil.WithRating(4.5), testutil.WithCost(3000))
	secret := testutil.NewTestSpot("창덕궁", testutil.WithCategory(domain.CategoryCulturalSite), testutil.WithRating(4.6), testutil.WithCost(3000))
	museum := testutil.NewTestSpot("박물관", testutil.WithCategory(domain.CategoryMuseum), testutil.WithRating(4.4), testutil.WithCost(0))
	cafe := testutil.NewTestSpot("찻집", testutil.WithCategory(domain.CategoryCafe), testutil.WithRating(4.9), testutil.WithCost(15000))
	seedSpots(t, repo, palace, secret, museum, cafe)

	got, err := repo.Search(ctx, SpotFilter{
		Categories: []domain.Category{domain.CategoryCulturalSite, domain.CategoryMuseum},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"창덕궁", "경복궁", "박물관"}, spotNames(got))

	got, err = repo.Search(ctx, SpotFilter{MaxCost: 3000})
	require.NoError(t, err)
	assert.Equal(t, []string{"창덕궁", "경복궁", "박물관"}, spotNames(got))

	got, err = repo.Search(ctx, SpotFilter{MinRating: 4.55})
	require.NoError(t, err)
	assert.Equal(t, []string{"찻집", "창덕궁"}, spotNames(got))
}

func TestSpotRepo_Search_Limit(t *testing.T) {
	repo := NewSQLiteSpotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		seedSpots(t, repo, testutil.NewTestSpot("카페"))
	}

	got, err := repo.Search(ctx, SpotFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 10, "default limit")

	got, err = repo.Search(ctx, SpotFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSpotRepo_ListAndDelete(t *testing.T) {
	repo := NewSQLiteSpotRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestSpot("A", testutil.WithNotes([]string{"h"}, []string{"t"}))
	b := testutil.NewTestSpot("B")
	seedSpots(t, repo, a, b)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), ErrNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSpotRepo_WorksInsideTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	spot := testutil.NewTestSpot("해운대 해수욕장", testutil.WithCategory(domain.CategoryBeach))
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteSpotRepo(tx).Create(ctx, &spot)
	})
	require.NoError(t, err)

	fetched, err := NewSQLiteSpotRepo(database).GetByID(ctx, spot.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryBeach, fetched.Category)
}

func spotNames(spots []*domain.Spot) []string {
	names := make([]string, len(spots))
	for i, s := range spots {
		names[i] = s.Name
	}
	return names
}
