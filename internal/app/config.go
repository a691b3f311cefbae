package app

import (
	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/logr"
)

// Config configures the application. Descriptions of each field can be found
// in the flag definitions in ./cmd/coverctl
type Config struct {
	// Database is a postgres connection string. Either it or Fixtures must
	// be set.
	Database string
	// Fixtures is a YAML file populating an in-memory store.
	Fixtures string
	// DatabasePermissions resolves permissions from the roles assigned to
	// the subject's user account rather than from the subject itself.
	DatabasePermissions bool
	// CarveOutFile is a YAML file of tenant visibility carve-outs.
	CarveOutFile string
	LogConfig    logr.Config
}

func (cfg *Config) Valid() error {
	if cfg.Database == "" && cfg.Fixtures == "" {
		return &internal.MissingParameterError{Parameter: "database or fixtures"}
	}
	if cfg.Database != "" && cfg.Fixtures != "" {
		return internal.InvalidOperation("database and fixtures are mutually exclusive")
	}
	if cfg.DatabasePermissions && cfg.Database == "" {
		return &internal.MissingParameterError{Parameter: "database"}
	}
	return nil
}
