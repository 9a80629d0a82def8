package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stackslice/config"
	"stackslice/internal/queue"
	"stackslice/internal/router"
	"stackslice/internal/service"
	"stackslice/internal/storage"
	"stackslice/internal/taskrunner"
	"stackslice/log"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	created, err := config.LoadOrCreateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Println("created default config.toml, fill in your API keys and restart")
		return
	}
	if err = config.CheckConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log.SetLogDir(config.Conf.App.LogDir)
	log.InitLogger()
	defer log.GetLogger().Sync()

	if err = storage.InitDB(filepath.Join(config.Conf.App.WorkDir, "stackslice.db")); err != nil {
		log.GetLogger().Error("failed to initialize database", zap.Error(err))
		os.Exit(1)
	}

	// Zombie cleanup: anything still "processing" did not survive the restart.
	if count, err := storage.MarkStaleJobs(); err != nil {
		log.GetLogger().Warn("failed to mark stale jobs", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("marked stale jobs as failed", zap.Int64("count", count))
	}

	svc := service.NewService(&config.Conf)

	// Redis configured means distributed scheduling via Asynq; otherwise jobs
	// run on the in-process worker pool.
	var dispatch func(jobId string) error
	if config.Conf.Queue.RedisAddr != "" {
		q := queue.NewQueue(queue.QueueConfig{
			RedisAddr:     config.Conf.Queue.RedisAddr,
			RedisPassword: config.Conf.Queue.RedisPassword,
			RedisDB:       config.Conf.Queue.RedisDB,
			Concurrency:   config.Conf.Queue.Concurrency,
		})
		defer q.Close()
		go func() {
			if err := queue.StartWorker(q, svc); err != nil {
				log.GetLogger().Error("queue worker stopped", zap.Error(err))
			}
		}()
		dispatch = func(jobId string) error {
			return q.EnqueueVideoJob(queue.VideoJobPayload{JobID: jobId})
		}
	} else {
		runner := taskrunner.New(svc, taskrunner.Config{Concurrency: config.Conf.Queue.Concurrency})
		defer runner.Close()
		dispatch = runner.Submit
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.Default()
	engine.MaxMultipartMemory = int64(config.Conf.App.MaxUploadSizeMB) << 20
	router.SetupRouter(engine, svc, dispatch)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("server listening", zap.String("addr", addr))
	if err = engine.Run(addr); err != nil {
		log.GetLogger().Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}
