package directors

import (
	"fmt"

	"relmap/src/settings"

	"go.uber.org/zap"
)

// NewLogger builds the session logger. Debug mode gets the development
// configuration with more verbose output.
func NewLogger(args *settings.Arguments) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if args.Debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger.Sugar(), nil
}
