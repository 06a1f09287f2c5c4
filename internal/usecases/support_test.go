package usecases

import (
	"context"
)

// stubGateway implements domain.CommandGateway with an injectable function.
type stubGateway struct {
	execute func(ctx context.Context, args []string, workDir string) (string, error)
}

func (g *stubGateway) Execute(ctx context.Context, args []string, workDir string) (string, error) {
	return g.execute(ctx, args, workDir)
}

// testLogger is a minimal logger for testing that doesn't output anything.
type testLogger struct{}

func (l *testLogger) Info(_ context.Context, _ string, _ map[string]interface{})           {}
func (l *testLogger) Debug(_ context.Context, _ string, _ map[string]interface{})          {}
func (l *testLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (l *testLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}
