// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions names the explicit inputs to a configuration load. Zero
// values mean "resolve normally": the platform config directory and the
// config.cue inside it.
type LoadOptions struct {
	// ConfigFilePath loads exactly this file instead of probing the
	// config directory. The file must exist when set.
	ConfigFilePath string
	// ConfigDirPath probes this directory instead of the platform one.
	ConfigDirPath string
}

// Provider is the loading seam commands depend on, so tests can hand a
// command a canned configuration without touching the filesystem.
type Provider interface {
	// Load builds the effective configuration: defaults, then the CUE
	// config file, then TEXENV_* environment overrides. The returned
	// path names the file that contributed settings, or "" when only
	// defaults and environment applied.
	Load(ctx context.Context, opts LoadOptions) (*Config, string, error)
}

type fileProvider struct{}

// NewProvider returns the file-backed Provider used outside tests.
func NewProvider() Provider {
	return &fileProvider{}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
