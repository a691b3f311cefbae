// Package app constructs the authorizers and their collaborators.
package app

import (
	"context"
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/additionalproperty"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/inmem"
	"github.com/covercore/covercore/internal/logr"
	"github.com/covercore/covercore/internal/organization"
	"github.com/covercore/covercore/internal/policy"
	"github.com/covercore/covercore/internal/resource"
	"github.com/covercore/covercore/internal/role"
	"github.com/covercore/covercore/internal/sql"
	"github.com/covercore/covercore/internal/user"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	// Application is the set of authorizers sharing one set of
	// collaborators.
	Application struct {
		logr.Logger

		*authz.Authorizer

		Organisations        *organization.Authorizer
		Roles                *role.Authorizer
		Users                *user.Authorizer
		AdditionalProperties *additionalproperty.Authorizer

		db *sql.DB
	}

	// store is implemented by both the postgres and in-memory read models.
	store interface {
		authz.RecordFetcher
		authz.OrganisationQuerier
		user.Fetcher
	}
)

// New constructs the application. Metrics are registered with reg, which may
// be nil.
func New(ctx context.Context, logger logr.Logger, cfg Config, reg prometheus.Registerer) (*Application, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	var (
		app   = &Application{Logger: logger}
		s     store
		perms authz.PermissionChecker
	)
	if cfg.Database != "" {
		db, err := sql.New(ctx, logger, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.db = db
		s = db
		if cfg.DatabasePermissions {
			perms = &sql.Permissions{DB: db}
		}
	} else {
		mem, err := inmem.LoadFixturesFile(cfg.Fixtures)
		if err != nil {
			return nil, fmt.Errorf("loading fixtures: %w", err)
		}
		s = mem
	}

	visibility, err := newTenantVisibility(logger, cfg.CarveOutFile)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Authorizer = authz.NewAuthorizer(authz.Options{
		Logger:           logger.WithValues("component", "authorizer"),
		Permissions:      perms,
		Records:          s,
		Organisations:    s,
		TenantVisibility: visibility,
		Registerer:       reg,
	})
	app.Organisations = organization.NewAuthorizer(logger, app.Authorizer)
	app.Roles = role.NewAuthorizer(logger, app.Authorizer)
	app.Users = user.NewAuthorizer(logger, app.Authorizer, s)
	app.AdditionalProperties = &additionalproperty.Authorizer{
		Records:       app.Authorizer,
		Organisations: app.Organisations,
		Users:         app.Users,
	}
	return app, nil
}

func newTenantVisibility(logger logr.Logger, path string) (authz.TenantVisibility, error) {
	if path == "" {
		return authz.NoTenantVisibility{}, nil
	}
	cfg, err := policy.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading carve-outs: %w", err)
	}
	carveOuts, err := policy.New(logger, cfg)
	if err != nil {
		return nil, err
	}
	logger.V(1).Info("loaded carve-outs", "path", path)
	return carveOuts, nil
}

// EntityAuthorizer returns the authorizer of an administered entity.
func (a *Application) EntityAuthorizer(kind resource.Kind) (authz.EntityAuthorizer, error) {
	switch kind {
	case resource.OrganisationKind:
		return a.Organisations, nil
	case resource.RoleKind:
		return a.Roles, nil
	case resource.UserKind:
		return a.Users, nil
	default:
		return nil, internal.InvalidOperation("%s is not an administered entity", kind)
	}
}

// Close releases the database connection, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
