package logsvc

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/davalosk/ezu/core"
)

// NewZapLogger builds the zap logger described by conf.
func NewZapLogger(conf core.LogConfig) (*zap.Logger, error) {
	var zapConf zap.Config
	switch conf.Format {
	case "console":
		zapConf = zap.NewDevelopmentConfig()
		zapConf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapConf = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(conf.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", conf.Level)
	}
	zapConf.Level = zap.NewAtomicLevelAt(level)

	zl, err := zapConf.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return zl, nil
}
