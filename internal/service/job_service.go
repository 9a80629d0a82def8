package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"stackslice/internal/dto"
	"stackslice/internal/storage"
	"stackslice/internal/types"
	"stackslice/log"
	apperrors "stackslice/pkg/errors"
)

// CreateJob records a pending job for a video source. The caller decides how
// the job gets scheduled; videoPath may be empty for remote sources that are
// fetched at processing time.
func (s *Service) CreateJob(videoSrc, videoPath string) (*dto.CreateVideoJobResData, error) {
	jobId := uuid.NewString()
	job := &types.VideoJob{
		JobId:     jobId,
		VideoSrc:  videoSrc,
		VideoPath: videoPath,
		Status:    types.JobStatusPending,
		StatusMsg: "Queued for processing",
	}
	if err := storage.SaveJob(job); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to create job", err)
	}
	log.GetLogger().Info("created video job", zap.String("jobId", jobId), zap.String("src", videoSrc))
	return &dto.CreateVideoJobResData{JobId: jobId, Status: types.JobStatusPending}, nil
}

// RunJob resolves the job's source to a local file if needed, then runs the
// pipeline. It is the single entrypoint both schedulers call.
func (s *Service) RunJob(jobId string) {
	job, err := storage.GetJob(jobId)
	if err != nil {
		log.GetLogger().Error("job not found for processing", zap.String("jobId", jobId), zap.Error(err))
		return
	}
	videoPath := job.VideoPath
	if videoPath == "" {
		videoPath, err = s.fetchRemoteSource(jobId, job.VideoSrc)
		if err != nil {
			log.GetLogger().Error("source fetch failed", zap.String("jobId", jobId), zap.Error(err))
			s.failJob(jobId, "Processing failed: "+err.Error())
			return
		}
		job.VideoPath = videoPath
		if err = storage.SaveJob(job); err != nil {
			log.GetLogger().Error("failed to persist video path", zap.String("jobId", jobId), zap.Error(err))
		}
	}
	s.ProcessVideoJob(jobId, videoPath)
}

func (s *Service) GetJobStatus(req dto.GetVideoJobReq) (*dto.GetVideoJobResData, error) {
	job, err := storage.GetJob(req.JobId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "Job not found", err)
	}
	data := jobToDto(*job)
	return &data, nil
}

func (s *Service) ListJobs(limit int) (*dto.JobHistoryResData, error) {
	jobs, err := storage.ListJobs(limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to list jobs", err)
	}
	return &dto.JobHistoryResData{
		Jobs: lo.Map(jobs, func(job types.VideoJob, _ int) dto.GetVideoJobResData {
			return jobToDto(job)
		}),
	}, nil
}

func (s *Service) DeleteJob(jobId string) error {
	if err := storage.DeleteJob(jobId); err != nil {
		return apperrors.Wrap(apperrors.CodeDBError, "Failed to delete job", err)
	}
	return nil
}

func jobToDto(job types.VideoJob) dto.GetVideoJobResData {
	return dto.GetVideoJobResData{
		JobId:      job.JobId,
		VideoSrc:   job.VideoSrc,
		Status:     job.Status,
		StatusMsg:  job.StatusMsg,
		FailReason: job.FailReason,
		Results:    job.Results,
		CreateTime: job.CreateTime.Format(time.RFC3339),
		UpdateTime: job.UpdateTime.Format(time.RFC3339),
	}
}
