package storage

import (
	"errors"

	"gorm.io/gorm"

	"stackslice/internal/types"
)

func SaveJob(job *types.VideoJob) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	// Upsert keyed on JobId; Id stays the primary key.
	var existing types.VideoJob
	result := DB.Where("job_id = ?", job.JobId).First(&existing)

	if result.Error == nil {
		job.Id = existing.Id
		return DB.Save(job).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(job).Error
	}
	return result.Error
}

func GetJob(jobId string) (*types.VideoJob, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var job types.VideoJob
	if err := DB.Where("job_id = ?", jobId).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func ListJobs(limit int) ([]types.VideoJob, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var jobs []types.VideoJob
	if err := DB.Order("create_time desc").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func DeleteJob(jobId string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Where("job_id = ?", jobId).Delete(&types.VideoJob{}).Error
}

// MarkStaleJobs flips every job left in processing to failed. Called on
// startup so a crashed run never leaves zombies visible as in-flight.
func MarkStaleJobs() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.VideoJob{}).
		Where("status = ?", types.JobStatusProcessing).
		Updates(map[string]interface{}{
			"status":      types.JobStatusFailed,
			"fail_reason": "Task interrupted by server restart",
			"status_msg":  "Processing failed: interrupted by server restart",
		})
	return result.RowsAffected, result.Error
}

// Store adapts the package-level helpers to the JobStore seam the pipeline
// consumes.
type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) UpdateJobStatus(jobId, status, message string) error {
	job, err := GetJob(jobId)
	if err != nil {
		return err
	}
	job.Status = status
	job.StatusMsg = message
	if status == types.JobStatusFailed {
		job.FailReason = message
	}
	return SaveJob(job)
}

func (s *Store) UpdateJobResults(jobId string, results *types.JobResults) error {
	job, err := GetJob(jobId)
	if err != nil {
		return err
	}
	job.Results = results
	return SaveJob(job)
}
