package logging

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/wpconfig/internal/resolver"
)

// LogResolved records where each resolved setting came from. Secret values
// are never written.
func LogResolved(logger *zap.Logger, cfg resolver.Config) {
	var defaulted []string
	for _, s := range cfg.Settings() {
		if s.Source == resolver.SourceDefault {
			defaulted = append(defaulted, s.Key)
		}

		fields := []zap.Field{
			zap.String("key", s.Key),
			zap.String("source", string(s.Source)),
		}
		if s.EnvVar != "" {
			fields = append(fields, zap.String("env", s.EnvVar))
		}
		if !s.Secret {
			fields = append(fields, zap.Any("value", s.Value))
		}
		logger.Debug("setting resolved", fields...)
	}

	logger.Info("configuration resolved",
		zap.Int("settings", cfg.Len()),
		zap.Strings("defaulted", defaulted),
		zap.String("db_host", cfg.DBHost()),
		zap.Bool("debug", cfg.Debug()),
	)
}
