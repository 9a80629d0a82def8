package types

import "time"

// Job statuses. A job is created pending, moves to processing with a stage
// message, and ends exactly once in completed or failed.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// VideoJob is the persisted processing job.
type VideoJob struct {
	Id         uint        `json:"-" gorm:"primarykey"`
	JobId      string      `json:"job_id" gorm:"uniqueIndex;size:64"`
	VideoSrc   string      `json:"video_src"`
	VideoPath  string      `json:"-"`
	Status     string      `json:"status" gorm:"size:16;index"`
	StatusMsg  string      `json:"status_msg"`
	FailReason string      `json:"fail_reason,omitempty"`
	Results    *JobResults `json:"results,omitempty" gorm:"serializer:json"`
	CreateTime time.Time   `json:"create_time" gorm:"autoCreateTime"`
	UpdateTime time.Time   `json:"update_time" gorm:"autoUpdateTime"`
}

// Terminal reports whether the job reached a final state.
func (j *VideoJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
