package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/repositories"
)

func newTestRepo(t *testing.T) (*CoachRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coaches.json")
	repo, err := New(path)
	require.NoError(t, err)
	return repo, path
}

func testCoach(id, name, email string) *models.Coach {
	return &models.Coach{
		ID:        id,
		Name:      name,
		Email:     email,
		Category:  "Fitness",
		Rating:    4,
		Status:    models.StatusActive,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestList_MissingFileIsEmpty(t *testing.T) {
	repo, path := newTestRepo(t)

	coaches, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, coaches)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "list must not create the data file")
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "coaches.json")
	_, err := New(path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	coach := testCoach("c1", "Ann", "ann@x.com")
	require.NoError(t, repo.Create(ctx, coach))

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, *coach, *got)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testCoach("c1", "Ann", "ann@x.com")))
	require.NoError(t, repo.Create(ctx, testCoach("c2", "Bob", "bob@x.com")))
	require.NoError(t, repo.Create(ctx, testCoach("c3", "Cid", "cid@x.com")))

	coaches, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, coaches, 3)
	assert.Equal(t, "c1", coaches[0].ID)
	assert.Equal(t, "c2", coaches[1].ID)
	assert.Equal(t, "c3", coaches[2].ID)
}

func TestUpdate(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	coach := testCoach("c1", "Ann", "ann@x.com")
	require.NoError(t, repo.Create(ctx, coach))

	coach.Name = "Anna"
	coach.Status = models.StatusInactive
	require.NoError(t, repo.Update(ctx, coach))

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, models.StatusInactive, got.Status)

	err = repo.Update(ctx, testCoach("missing", "X", "x@x.com"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testCoach("c1", "Ann", "ann@x.com")))
	require.NoError(t, repo.Create(ctx, testCoach("c2", "Bob", "bob@x.com")))
	require.NoError(t, repo.Create(ctx, testCoach("c3", "Cid", "cid@x.com")))

	require.NoError(t, repo.Delete(ctx, "c2"))

	_, err := repo.GetByID(ctx, "c2")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	coaches, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, coaches, 2)
	assert.Equal(t, "c1", coaches[0].ID)
	assert.Equal(t, "c3", coaches[1].ID)

	assert.ErrorIs(t, repo.Delete(ctx, "c2"), repositories.ErrNotFound)
}

func TestFindByEmail_CaseInsensitive(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testCoach("c1", "Ann", "Ann@X.com")))

	got, err := repo.FindByEmail(ctx, "ann@x.COM")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)

	_, err = repo.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRoundTrip_SurvivesReopen(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testCoach("c1", "Ann", "ann@x.com")))
	require.NoError(t, repo.Create(ctx, testCoach("c2", "Bob", "bob@x.com")))

	before, err := repo.List(ctx)
	require.NoError(t, err)

	// Simulate a process restart by opening a fresh repository on the same file
	reopened, err := New(path)
	require.NoError(t, err)

	after, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
