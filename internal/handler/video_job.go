package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stackslice/config"
	"stackslice/internal/dto"
	"stackslice/internal/response"
	"stackslice/internal/storage"
	"stackslice/internal/types"
	"stackslice/log"
	apperrors "stackslice/pkg/errors"
	"stackslice/pkg/util"
)

var allowedVideoExts = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
}

func (h Handler) CreateVideoJob(c *gin.Context) {
	var req dto.CreateVideoJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("CreateVideoJob ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("CreateVideoJob received request", zap.String("url", req.Url))

	data, err := h.Service.CreateJob(req.Url, "")
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	if err = h.Dispatch(data.JobId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Failed to schedule job", err))
		return
	}
	response.Success(c, data)
}

func (h Handler) UploadVideo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Missing file", err))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExts[ext] {
		response.ErrorResponse(c, apperrors.ErrUnsupportedFormat)
		return
	}
	maxBytes := int64(config.Conf.App.MaxUploadSizeMB) * 1024 * 1024
	if file.Size > maxBytes {
		response.ErrorResponse(c, apperrors.WrapWithDetail(apperrors.CodeFileTooLarge, "Video file too large",
			fmt.Sprintf("limit is %d MB", config.Conf.App.MaxUploadSizeMB), nil))
		return
	}

	savedName := util.GenerateRandStringWithUpperLowerNum(16) + ext
	savedPath := filepath.Join(config.Conf.App.WorkDir, "uploads", savedName)
	if err = os.MkdirAll(filepath.Dir(savedPath), 0755); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to store upload", err))
		return
	}
	if err = c.SaveUploadedFile(file, savedPath); err != nil {
		log.GetLogger().Error("UploadVideo save err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to store upload", err))
		return
	}

	data, err := h.Service.CreateJob(file.Filename, savedPath)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	if err = h.Dispatch(data.JobId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Failed to schedule job", err))
		return
	}
	response.Success(c, dto.UploadResData{JobId: data.JobId, Status: data.Status})
}

func (h Handler) GetVideoJob(c *gin.Context) {
	var req dto.GetVideoJobReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	data, err := h.Service.GetJobStatus(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h Handler) GetJobHistory(c *gin.Context) {
	limit := 200
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	data, err := h.Service.ListJobs(limit)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h Handler) DeleteVideoJob(c *gin.Context) {
	jobId := c.Param("jobId")
	if jobId == "" {
		response.ErrorResponse(c, apperrors.ErrInvalidParams)
		return
	}

	// Remove job artifacts from disk; DB record goes regardless.
	workDir := filepath.Join(config.Conf.App.WorkDir, jobId)
	if err := os.RemoveAll(workDir); err != nil {
		log.GetLogger().Error("DeleteVideoJob RemoveAll err", zap.String("path", workDir), zap.Error(err))
	}
	archivePath := filepath.Join(config.Conf.App.OutputDir, jobId+"_results.zip")
	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		log.GetLogger().Error("DeleteVideoJob remove archive err", zap.String("path", archivePath), zap.Error(err))
	}

	if err := h.Service.DeleteJob(jobId); err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, nil)
}

func (h Handler) DownloadResults(c *gin.Context) {
	jobId := c.Param("jobId")
	job, err := storage.GetJob(jobId)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeNotFound, "Job not found", err))
		return
	}
	if job.Status != types.JobStatusCompleted || job.Results == nil || job.Results.ArchivePath == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeNotFound, "Results not ready"))
		return
	}
	if _, err = os.Stat(job.Results.ArchivePath); err != nil {
		response.ErrorResponse(c, apperrors.ErrFileNotFound)
		return
	}
	c.FileAttachment(job.Results.ArchivePath, filepath.Base(job.Results.ArchivePath))
}
