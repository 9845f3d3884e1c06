package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/wpconfig/internal/resolver"
)

func TestLogResolvedHidesSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := resolver.Resolve(resolver.MapEnvironment{
		resolver.EnvDatabasePassword: "hunter2",
		resolver.EnvDatabaseHost:     "db",
	})

	LogResolved(zap.New(core), cfg)

	if got := logs.FilterMessage("setting resolved").Len(); got != cfg.Len() {
		t.Fatalf("expected %d debug entries, got %d", cfg.Len(), got)
	}

	for _, entry := range logs.All() {
		for _, field := range entry.Context {
			if field.String == "hunter2" {
				t.Fatalf("secret leaked in %q field %s", entry.Message, field.Key)
			}
		}
	}

	summary := logs.FilterMessage("configuration resolved").All()
	if len(summary) != 1 {
		t.Fatalf("expected one summary entry, got %d", len(summary))
	}
	fields := summary[0].ContextMap()
	if fields["db_host"] != "db:3306" {
		t.Fatalf("unexpected db_host field: %v", fields["db_host"])
	}
}
