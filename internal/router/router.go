package router

import (
	"github.com/gin-gonic/gin"

	"stackslice/internal/handler"
	"stackslice/internal/service"
)

func SetupRouter(r *gin.Engine, svc *service.Service, dispatch func(jobId string) error) {
	api := r.Group("/api")

	hdl := handler.NewHandler(svc, dispatch)
	{
		api.POST("/job", hdl.CreateVideoJob)
		api.GET("/job", hdl.GetVideoJob)
		api.GET("/job/history", hdl.GetJobHistory)
		api.DELETE("/job/:jobId", hdl.DeleteVideoJob)
		api.GET("/job/:jobId/download", hdl.DownloadResults)
		api.GET("/job/progress", hdl.JobProgress)
		api.POST("/upload", hdl.UploadVideo)
	}
}
