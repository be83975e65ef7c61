package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global zap logger for the given environment.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "production", "staging":
		l, err = zap.NewProduction()
	case "test":
		l = zap.NewNop()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to build zap logger for %q -> %w", env, err)
	}

	zap.ReplaceGlobals(l)

	return nil
}
