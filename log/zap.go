package log

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
)

var Logger *zap.Logger

const logFileName = "app.log"

// logDir is set via SetLogDir before InitLogger; defaults to ./logs.
var logDir = "./logs"

// SetLogDir overrides the directory the log file is written to. Call before
// InitLogger.
func SetLogDir(dir string) {
	if strings.TrimSpace(dir) != "" {
		logDir = dir
	}
}

func InitLogger() {
	dir := ResolveLogDir()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic("failed to create log directory: " + err.Error())
	}

	logFilePath := filepath.Join(dir, logFileName)
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		panic("failed to open log file: " + err.Error())
	}

	fileSyncer := zapcore.AddSync(file)
	consoleSyncer := zapcore.AddSync(os.Stdout)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileSyncer, zap.DebugLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), consoleSyncer, zap.InfoLevel),
	)

	Logger = zap.New(core, zap.AddCaller())
}

func ResolveLogDir() string {
	dir := strings.TrimSpace(logDir)
	if dir == "" {
		return "."
	}
	return dir
}

func ResolveLogFilePath() string {
	return filepath.Join(ResolveLogDir(), logFileName)
}

func GetLogger() *zap.Logger {
	return Logger
}
