package main

import (
	"context"

	"github.com/covercore/covercore/internal/app"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/logr"
	"github.com/prometheus/client_golang/prometheus"
)

// application lazily constructs the authorizers once flags are parsed.
type application struct {
	cfg       app.Config
	principal principalFlags

	logger logr.Logger
	app    *app.Application
}

// authorize returns the application along with a context carrying the
// principal described by the flags.
func (a *application) authorize(ctx context.Context) (*app.Application, context.Context, error) {
	subj, err := a.principal.principal()
	if err != nil {
		return nil, nil, err
	}
	if a.app == nil {
		if err := a.setupLogger(); err != nil {
			return nil, nil, err
		}
		a.app, err = app.New(ctx, a.logger, a.cfg, prometheus.NewRegistry())
		if err != nil {
			return nil, nil, err
		}
	}
	return a.app, authz.AddSubjectToContext(ctx, subj), nil
}

func (a *application) setupLogger() (err error) {
	a.logger, err = logr.New(&a.cfg.LogConfig)
	return err
}

func (a *application) close() error {
	if a.app == nil {
		return nil
	}
	return a.app.Close()
}
