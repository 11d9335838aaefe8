package logsvc

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tundavala/escola/core"
)

// NewZapLogger builds the local logger: JSON in production, coloured console output elsewhere.
func NewZapLogger(conf *core.Config, name string) (*zap.Logger, error) {
	var config zap.Config

	if conf.Env == "prod" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.OutputPaths = []string{"stdout"}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(name), nil
}
