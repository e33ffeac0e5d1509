package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/datemate/internal/db"
	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/testutil"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// Searches issued by concurrent chat sessions must keep working while the
// catalog is being reseeded.
func TestConcurrentAccess_SearchDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteSpotRepo(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			s := testutil.NewTestSpot(fmt.Sprintf("카페-%d", i),
				testutil.WithAddress("홍대", "서울특별시 마포구 홍익로"))
			if err := repo.Create(ctx, &s); err != nil {
				t.Errorf("writer: create spot %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				found, err := repo.Search(ctx, SpotFilter{Location: "홍대", Categories: []domain.Category{domain.CategoryCafe}})
				if err != nil {
					t.Errorf("reader %d: search: %v", reader, err)
					return
				}
				for _, s := range found {
					if s.ID == "" || s.Name == "" {
						t.Errorf("reader %d: got half-written spot %+v", reader, s)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestConcurrentAccess_ManyReaders(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteSpotRepo(database)

	const spotCount = 10
	ids := make([]string, spotCount)
	for i := 0; i < spotCount; i++ {
		s := testutil.NewTestSpot(fmt.Sprintf("장소-%d", i),
			testutil.WithHours(map[string]string{"토": "09:00-18:00"}),
			testutil.WithNotes([]string{"추천"}, nil))
		require.NoError(t, repo.Create(ctx, &s))
		ids[i] = s.ID
	}

	var wg sync.WaitGroup
	const readers = 20
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()

			all, err := repo.List(ctx)
			if err != nil {
				t.Errorf("reader %d: list: %v", reader, err)
				return
			}
			if len(all) != spotCount {
				t.Errorf("reader %d: expected %d spots, got %d", reader, spotCount, len(all))
			}

			s, err := repo.GetByID(ctx, ids[reader%spotCount])
			if err != nil {
				t.Errorf("reader %d: get: %v", reader, err)
				return
			}
			if len(s.Highlights) != 1 || s.OpeningHours["토"] != "09:00-18:00" {
				t.Errorf("reader %d: details not loaded: %+v", reader, s)
			}
		}(r)
	}

	wg.Wait()
}
