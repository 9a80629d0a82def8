package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"stackslice/internal/storage"
	"stackslice/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// progressPollInterval is how often job state is pushed to a connected client.
const progressPollInterval = time.Second

// progressWriteWait bounds each websocket write so a dead peer surfaces as a
// write error instead of a stuck goroutine.
const progressWriteWait = 10 * time.Second

type progressEvent struct {
	JobId     string `json:"job_id"`
	Status    string `json:"status"`
	StatusMsg string `json:"status_msg"`
}

// JobProgress streams job status over a websocket until the job reaches a
// terminal state or the client goes away.
func (h Handler) JobProgress(c *gin.Context) {
	jobId := c.Query("jobId")
	if jobId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobId is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Error("JobProgress upgrade err", zap.Error(err))
		return
	}
	defer conn.Close()

	// Read pump: the client never sends application data, but reading is how
	// a closed connection is noticed while the job sits unchanged.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(progressPollInterval)
	defer ticker.Stop()

	var lastMsg string
	for {
		job, err := storage.GetJob(jobId)
		if err != nil {
			conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
			_ = conn.WriteJSON(gin.H{"error": "job not found"})
			return
		}
		if job.StatusMsg != lastMsg || job.Terminal() {
			conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
			event := progressEvent{JobId: job.JobId, Status: job.Status, StatusMsg: job.StatusMsg}
			if err = conn.WriteJSON(event); err != nil {
				return
			}
			lastMsg = job.StatusMsg
		}
		if job.Terminal() {
			return
		}
		select {
		case <-clientGone:
			return
		case <-ticker.C:
		}
	}
}
