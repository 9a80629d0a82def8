package taskrunner

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"stackslice/config"
	"stackslice/internal/service"
	"stackslice/log"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "runner-test-logs")
	if err != nil {
		panic(err)
	}
	log.SetLogDir(dir)
	log.InitLogger()

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newRunner(cfg Config) *Runner {
	return New(service.NewService(&config.Config{}), cfg)
}

func TestNormalizeConfigDefaults(t *testing.T) {
	cfg := normalizeConfig(Config{})
	assert.Equal(t, defaultQueueSize, cfg.QueueSize)
	assert.Equal(t, defaultConcurrency, cfg.Concurrency)

	cfg = normalizeConfig(Config{QueueSize: 4, Concurrency: 1})
	assert.Equal(t, 4, cfg.QueueSize)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestSubmitRequiresJobId(t *testing.T) {
	runner := newRunner(DefaultConfig())
	defer runner.Close()

	assert.Error(t, runner.Submit(""))
}

func TestSubmitAfterCloseReturnsStopped(t *testing.T) {
	runner := newRunner(DefaultConfig())
	runner.Close()

	assert.ErrorIs(t, runner.Submit("job-1"), ErrRunnerStopped)
}

func TestCloseIsIdempotent(t *testing.T) {
	runner := newRunner(DefaultConfig())
	runner.Close()
	runner.Close()

	assert.Equal(t, 0, runner.Pending())
}
