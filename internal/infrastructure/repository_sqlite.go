package infrastructure

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

// InMemoryDSN keeps the journal for the lifetime of the process only
const InMemoryDSN = "file::memory:"

// SQLiteJobRepository implements JobRepository using SQLite
type SQLiteJobRepository struct {
	db *gorm.DB
}

// NewSQLiteJobRepository opens the journal at dsn and migrates the schema
func NewSQLiteJobRepository(dsn string) (*SQLiteJobRepository, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to an in-memory database is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.DownloadJob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteJobRepository{db: db}, nil
}

// Create creates a new job
func (r *SQLiteJobRepository) Create(job *domain.DownloadJob) error {
	return r.db.Create(job).Error
}

// Update updates an existing job
func (r *SQLiteJobRepository) Update(job *domain.DownloadJob) error {
	return r.db.Save(job).Error
}

// FindByRun returns the jobs of a run in processing order
func (r *SQLiteJobRepository) FindByRun(runID string) ([]*domain.DownloadJob, error) {
	var jobs []*domain.DownloadJob
	err := r.db.Where("run_id = ?", runID).
		Order("position ASC").
		Find(&jobs).Error
	return jobs, err
}

// GetStats returns job statistics for a run
func (r *SQLiteJobRepository) GetStats(runID string) (*domain.JobStats, error) {
	stats := &domain.JobStats{}

	if err := r.db.Model(&domain.DownloadJob{}).Where("run_id = ?", runID).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	statusCounts := []struct {
		Status domain.JobStatus
		Count  int64
	}{}

	if err := r.db.Model(&domain.DownloadJob{}).
		Select("status, count(*) as count").
		Where("run_id = ?", runID).
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		switch sc.Status {
		case domain.StatusPending:
			stats.Pending = sc.Count
		case domain.StatusAcquiring:
			stats.Acquiring = sc.Count
		case domain.StatusMerging:
			stats.Merging = sc.Count
		case domain.StatusCompleted:
			stats.Completed = sc.Count
		case domain.StatusFailed:
			stats.Failed = sc.Count
		}
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteJobRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ domain.JobRepository = (*SQLiteJobRepository)(nil)
