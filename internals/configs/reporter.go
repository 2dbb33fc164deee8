package configs

import (
	"github.com/rollbar/rollbar-go"
	"go.uber.org/zap"
)

// Reporter meneruskan error 5xx/panic ke Rollbar kalau token tersedia.
type Reporter struct {
	enabled bool
	log     *zap.Logger
}

func NewReporter(cfg *Config, l *zap.Logger) *Reporter {
	if cfg.RollbarToken == "" {
		return &Reporter{log: l}
	}
	rollbar.SetToken(cfg.RollbarToken)
	rollbar.SetEnvironment(cfg.Env)
	rollbar.SetCodeVersion(cfg.CodeVersion)
	rollbar.SetServerRoot("schoolhub_backend")
	rollbar.SetEnabled(true)
	l.Info("rollbar reporting enabled")
	return &Reporter{enabled: true, log: l}
}

// Error: extras boleh nil.
func (r *Reporter) Error(err error, extras map[string]interface{}) {
	if err == nil {
		return
	}
	r.log.Error("unhandled error", zap.Error(err), zap.Any("extras", extras))
	if !r.enabled {
		return
	}
	if extras != nil {
		rollbar.Error(err, extras)
		return
	}
	rollbar.Error(err)
}

func (r *Reporter) Close() {
	if r.enabled {
		rollbar.Wait()
		rollbar.Close()
	}
}
