package dto

import "stackslice/internal/types"

// CreateVideoJobReq submits a remote video for processing.
type CreateVideoJobReq struct {
	Url string `json:"url" binding:"required"`
}

type CreateVideoJobResData struct {
	JobId  string `json:"job_id"`
	Status string `json:"status"`
}

// GetVideoJobReq polls a job by id.
type GetVideoJobReq struct {
	JobId string `form:"jobId" binding:"required"`
}

type GetVideoJobResData struct {
	JobId      string            `json:"job_id"`
	VideoSrc   string            `json:"video_src"`
	Status     string            `json:"status"`
	StatusMsg  string            `json:"status_msg"`
	FailReason string            `json:"fail_reason,omitempty"`
	Results    *types.JobResults `json:"results,omitempty"`
	CreateTime string            `json:"create_time"`
	UpdateTime string            `json:"update_time"`
}

type JobHistoryResData struct {
	Jobs []GetVideoJobResData `json:"jobs"`
}

// UploadResData identifies a stored upload; the job created for it reuses
// the same id.
type UploadResData struct {
	JobId  string `json:"job_id"`
	Status string `json:"status"`
}
