package srv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/threadbot/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service and blocks until ctx is done or one of them returns.
// Services are then shut down in reverse order. The first start error is returned.
func Run(ctx context.Context, services []Service) error {
	logger := log.FromCtx(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, len(services))
	for _, service := range services {
		go func(service Service) {
			err := service.Start(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				err = fmt.Errorf("%T: %w", service, err)
			} else {
				err = nil
			}
			done <- err
		}(service)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-done:
		if runErr != nil {
			logger.Error().Err(runErr).Msg("service stopped with error")
		}
	}
	cancel()

	shutdownServices(ctx, services)
	return runErr
}

func shutdownServices(ctx context.Context, services []Service) {
	// ctx is already cancelled, shutdown only needs its values
	ctx = context.WithoutCancel(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
