// Package bootstrap shares the setup every provisioning CLI performs:
// loading configuration from the environment, assembling the site module,
// and opening the admin-scope management client.
package bootstrap

import (
	"fmt"
	"strings"

	venuesite "github.com/rumriverbarn/venuesite"
	"github.com/rumriverbarn/venuesite/internal/commands"
	"github.com/rumriverbarn/venuesite/internal/commands/provision"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// Options captures flag overrides applied on top of the environment.
type Options struct {
	Region   string
	SpaceID  string
	LogLevel string
}

// Module wraps the assembled site runtime and its management client.
type Module struct {
	Site       *venuesite.Module
	Management provision.ManagementAPI
	Logger     interfaces.Logger
}

// BuildModule assembles the provisioning runtime. Admin credentials are
// required; the commands cannot run read-only.
func BuildModule(opts Options) (*Module, error) {
	cfg := venuesite.ConfigFromEnv()
	if trimmed := strings.TrimSpace(opts.Region); trimmed != "" {
		cfg.Region = trimmed
	}
	if trimmed := strings.TrimSpace(opts.SpaceID); trimmed != "" {
		cfg.SpaceID = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}

	// Provisioning runs read commands through the admin surface only; a
	// read token is not required here.
	if strings.TrimSpace(cfg.Tokens.Read) == "" {
		cfg.Tokens.Read = cfg.Tokens.Admin
	}

	site, err := venuesite.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("assemble site module: %w", err)
	}

	management, err := site.Management()
	if err != nil {
		return nil, err
	}

	return &Module{
		Site:       site,
		Management: management,
		Logger:     commands.CommandLogger(site.LoggerProvider(), "provision"),
	}, nil
}

// SplitSlugs parses a comma separated slug list into a trimmed slice.
func SplitSlugs(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
