package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. GIN_MODE=release switches to the
// production JSON encoder; anything else gets the development console one.
func NewLogger() *zap.Logger {
	loggerConfig := zap.NewDevelopmentConfig()
	if os.Getenv("GIN_MODE") == "release" {
		loggerConfig = zap.NewProductionConfig()
	}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := loggerConfig.Build()
	if nil != err {
		panic(err)
	}

	return logger
}
