// Package app runs long-lived services side by side until the first one stops.
package app

import (
	"context"

	"github.com/oklog/run"
)

// Service is a long-running unit of work. Run blocks until ctx is cancelled or
// the service fails.
type Service interface {
	Run(ctx context.Context) error
}

// ServiceFunc adapts a function to the Service interface.
type ServiceFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f ServiceFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// App groups services. When any of them returns, the others are cancelled.
type App struct {
	services []Service
	runner   *run.Group
}

// NewApp creates an empty App.
func NewApp() *App {
	return &App{
		services: make([]Service, 0),
		runner:   &run.Group{},
	}
}

// WithService adds s to the group.
func (a *App) WithService(s Service) *App {
	a.services = append(a.services, s)
	return a
}

// Run starts every service and waits for all of them to stop.
// It returns the error of the service that stopped first.
func (a *App) Run(ctx context.Context) error {
	for _, service := range a.services {
		a.runner.Add(actor(ctx, service))
	}

	return a.runner.Run()
}

func actor(ctx context.Context, service Service) (func() error, func(err error)) {
	ctx, cancel := context.WithCancelCause(ctx)
	return func() error {
			return service.Run(ctx)
		}, func(err error) {
			cancel(err)
		}
}
