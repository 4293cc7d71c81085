package infrastructure

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

func setupTestRepo(t *testing.T) *SQLiteJobRepository {
	t.Helper()
	repo, err := NewSQLiteJobRepository(InMemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestJobRepository_CreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)

	job := domain.NewDownloadJob("run-1", 0, domain.NewVideoReference("First", "a1"))
	require.NoError(t, repo.Create(job))

	jobs, err := repo.FindByRun("run-1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	found := jobs[0]
	assert.Equal(t, job.ID, found.ID)
	assert.Equal(t, "First", found.Title)
	assert.Equal(t, domain.StatusPending, found.Status)
	assert.Equal(t, "https://www.youtube.com/watch?v=a1", found.URL)
}

func TestJobRepository_FindByRunUnknownRun(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Create(domain.NewDownloadJob("run-1", 0, domain.NewVideoReference("v", "id"))))

	jobs, err := repo.FindByRun("nope")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobRepository_UpdatePersistsTransitions(t *testing.T) {
	repo := setupTestRepo(t)

	job := domain.NewDownloadJob("run-1", 0, domain.NewVideoReference("Clip", "c"))
	require.NoError(t, repo.Create(job))

	job.MarkAcquiring()
	job.MarkMerging("v.mp4", "a.m4a")
	job.MarkCompleted("Clip.mp4")
	require.NoError(t, repo.Update(job))

	jobs, err := repo.FindByRun("run-1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	found := jobs[0]
	assert.Equal(t, domain.StatusCompleted, found.Status)
	assert.Equal(t, "Clip.mp4", found.OutputFile)
	assert.NotNil(t, found.CompletedAt)
}

func TestJobRepository_FindByRunOrdersByIndex(t *testing.T) {
	repo := setupTestRepo(t)

	for _, i := range []int{2, 0, 1} {
		require.NoError(t, repo.Create(domain.NewDownloadJob("run-1", i, domain.NewVideoReference("v", "id"))))
	}
	require.NoError(t, repo.Create(domain.NewDownloadJob("run-2", 0, domain.NewVideoReference("other", "id"))))

	jobs, err := repo.FindByRun("run-1")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	for i, job := range jobs {
		assert.Equal(t, i, job.Index)
		assert.Equal(t, "run-1", job.RunID)
	}
}

func TestJobRepository_GetStats(t *testing.T) {
	repo := setupTestRepo(t)

	done := domain.NewDownloadJob("run-1", 0, domain.NewVideoReference("a", "1"))
	done.MarkCompleted("a.mp4")
	failed := domain.NewDownloadJob("run-1", 1, domain.NewVideoReference("b", "2"))
	failed.MarkFailed(errors.New("audio stream closed"))
	pending := domain.NewDownloadJob("run-1", 2, domain.NewVideoReference("c", "3"))
	elsewhere := domain.NewDownloadJob("run-2", 0, domain.NewVideoReference("d", "4"))

	for _, job := range []*domain.DownloadJob{done, failed, pending, elsewhere} {
		require.NoError(t, repo.Create(job))
	}

	stats, err := repo.GetStats("run-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.JobStats{Total: 3, Pending: 1, Completed: 1, Failed: 1}, stats)
}

func TestJobRepository_FileDatabase(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "jobs.db")
	repo, err := NewSQLiteJobRepository(dsn)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Create(domain.NewDownloadJob("run-1", 0, domain.NewVideoReference("a", "1"))))
	assert.FileExists(t, dsn)
}
