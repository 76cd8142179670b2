// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/texenv/texenv/pkg/texenv"
)

const (
	// InteractionBatchMode runs the engine without stopping, suppressing most output.
	InteractionBatchMode InteractionMode = "batchmode"
	// InteractionNonStopMode runs the engine without stopping at errors.
	InteractionNonStopMode InteractionMode = "nonstopmode"
	// InteractionScrollMode scrolls past errors but stops at missing files.
	InteractionScrollMode InteractionMode = "scrollmode"
	// InteractionErrorStopMode stops at every error and prompts for input.
	InteractionErrorStopMode InteractionMode = "errorstopmode"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidInteractionMode is returned when an InteractionMode value is not recognized.
	ErrInvalidInteractionMode = errors.New("invalid interaction mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPrefixPath is returned when a PrefixPath value is whitespace-only.
	ErrInvalidPrefixPath = errors.New("invalid prefix path")
	// ErrInvalidTexmfPath is returned when a TexmfPath value is whitespace-only.
	ErrInvalidTexmfPath = errors.New("invalid texmf path")
	// ErrInvalidToolName is returned when a ToolName value is not a bare file name.
	ErrInvalidToolName = errors.New("invalid tool name")
	// ErrInvalidBundleDirName is returned when a BundleDirName value is not a single path element.
	ErrInvalidBundleDirName = errors.New("invalid bundle dir name")
	// ErrInvalidTexInputEntry is returned when a TexInputEntry value is empty or whitespace-only.
	ErrInvalidTexInputEntry = errors.New("invalid tex inputs entry")
	// ErrInvalidExtraArgs is returned when an extra_args value cannot be split into words.
	ErrInvalidExtraArgs = errors.New("invalid extra args")
	// ErrInvalidCompileConfig is the sentinel error wrapped by InvalidCompileConfigError.
	ErrInvalidCompileConfig = errors.New("invalid compile config")
	// ErrInvalidSearchPathConfig is the sentinel error wrapped by InvalidSearchPathConfigError.
	ErrInvalidSearchPathConfig = errors.New("invalid search path config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// InteractionMode specifies how a TeX engine reacts to errors in the input.
	// The values mirror the engine's own -interaction flag.
	InteractionMode string

	// InvalidInteractionModeError is returned when an InteractionMode value is not recognized.
	// It wraps ErrInvalidInteractionMode for errors.Is() compatibility.
	InvalidInteractionModeError struct {
		Value InteractionMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// PrefixPath represents a filesystem path to a LaTeX installation prefix.
	// The zero value ("") is valid and means "auto-detect the prefix".
	// Non-zero values must not be whitespace-only.
	PrefixPath string

	// InvalidPrefixPathError is returned when a PrefixPath value is
	// non-empty but whitespace-only.
	InvalidPrefixPathError struct {
		Value PrefixPath
	}

	// TexmfPath represents a filesystem path to a user texmf tree.
	// The zero value ("") is valid and means "leave TEXMFHOME alone".
	// Non-zero values must not be whitespace-only.
	TexmfPath string

	// InvalidTexmfPathError is returned when a TexmfPath value is
	// non-empty but whitespace-only.
	InvalidTexmfPathError struct {
		Value TexmfPath
	}

	// ToolName represents the bare file name of a toolchain executable,
	// like "pdflatex" or "bibtex". Names are resolved through the toolchain
	// registry, so they must not contain path separators.
	// The zero value ("") is valid and means "use the built-in default".
	ToolName string

	// InvalidToolNameError is returned when a ToolName value is
	// whitespace-only or contains a path separator.
	InvalidToolNameError struct {
		Value ToolName
	}

	// BundleDirName represents the directory name probed under share/ to
	// find the toolchain's data tree. It must be a single path element.
	// The zero value ("") is valid and means "use the built-in default".
	BundleDirName string

	// InvalidBundleDirNameError is returned when a BundleDirName value is
	// whitespace-only or contains a path separator.
	InvalidBundleDirNameError struct {
		Value BundleDirName
	}

	// TexInputEntry represents a single TEXINPUTS search directory.
	// A valid entry must be non-empty and not whitespace-only.
	TexInputEntry string

	// InvalidTexInputEntryError is returned when a TexInputEntry value is
	// empty or whitespace-only. It wraps ErrInvalidTexInputEntry for errors.Is().
	InvalidTexInputEntryError struct {
		Value TexInputEntry
	}

	// InvalidExtraArgsError is returned when an extra_args value cannot be
	// split into shell words. It wraps ErrInvalidExtraArgs for errors.Is()
	// compatibility and carries the underlying parse error.
	InvalidExtraArgsError struct {
		Value string
		Cause error
	}

	// InvalidCompileConfigError is returned when a CompileConfig has invalid fields.
	// It wraps ErrInvalidCompileConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidCompileConfigError struct {
		FieldErrors []error
	}

	// InvalidSearchPathConfigError is returned when a SearchPathConfig has invalid fields.
	// It wraps ErrInvalidSearchPathConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidSearchPathConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Prefix pins the LaTeX installation prefix, bypassing auto-detection
		Prefix PrefixPath `json:"prefix" mapstructure:"prefix"`
		// BundleDir overrides the bundle directory name probed under share/
		BundleDir BundleDirName `json:"bundle_dir" mapstructure:"bundle_dir"`
		// PrimaryTool overrides the PDF-producing engine
		PrimaryTool ToolName `json:"primary_tool" mapstructure:"primary_tool"`
		// BibTool overrides the bibliography processor
		BibTool ToolName `json:"bib_tool" mapstructure:"bib_tool"`
		// Compile configures how documents are compiled
		Compile CompileConfig `json:"compile" mapstructure:"compile"`
		// SearchPath configures the input search path for spawned tools
		SearchPath SearchPathConfig `json:"search_path" mapstructure:"search_path"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// CompileConfig configures how documents are compiled.
	CompileConfig struct {
		// ExtraArgs are shell-quoted engine flags prepended to every run
		ExtraArgs string `json:"extra_args" mapstructure:"extra_args"`
		// Interaction selects the engine's error-handling mode
		Interaction InteractionMode `json:"interaction" mapstructure:"interaction"`
	}

	// SearchPathConfig configures the input search path for spawned tools.
	SearchPathConfig struct {
		// TexmfHome becomes TEXMFHOME for spawned tools
		TexmfHome TexmfPath `json:"texmf_home" mapstructure:"texmf_home"`
		// TexInputs entries are searched before the engine's defaults
		TexInputs []TexInputEntry `json:"tex_inputs" mapstructure:"tex_inputs"`
		// UseBundleDefaults exposes the bundle's own texmf tree to spawned
		// tools (default: true)
		UseBundleDefaults bool `json:"use_bundle_defaults" mapstructure:"use_bundle_defaults"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// ExtraArgsList splits ExtraArgs into individual arguments using shell
// word-splitting rules, so quoted arguments survive intact. A blank
// value yields a nil slice.
func (c CompileConfig) ExtraArgsList() ([]string, error) {
	if strings.TrimSpace(c.ExtraArgs) == "" {
		return nil, nil
	}
	fields, err := shell.Fields(c.ExtraArgs, nil)
	if err != nil {
		return nil, &InvalidExtraArgsError{Value: c.ExtraArgs, Cause: err}
	}
	return fields, nil
}

// IsValid returns whether the CompileConfig has valid fields.
// It delegates to Interaction.IsValid() and checks that ExtraArgs can be
// split into shell words.
func (c CompileConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Interaction.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if _, err := c.ExtraArgsList(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidCompileConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCompileConfigError.
func (e *InvalidCompileConfigError) Error() string {
	return fmt.Sprintf("invalid compile config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCompileConfig for errors.Is() compatibility.
func (e *InvalidCompileConfigError) Unwrap() error { return ErrInvalidCompileConfig }

// IsValid returns whether the SearchPathConfig has valid fields.
// It delegates to TexmfHome.IsValid() and each TexInputs entry's IsValid();
// bool fields need no validation.
func (c SearchPathConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.TexmfHome.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, entry := range c.TexInputs {
		if valid, fieldErrs := entry.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSearchPathConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSearchPathConfigError.
func (e *InvalidSearchPathConfigError) Error() string {
	return fmt.Sprintf("invalid search path config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidSearchPathConfig for errors.Is() compatibility.
func (e *InvalidSearchPathConfigError) Unwrap() error { return ErrInvalidSearchPathConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Prefix.IsValid(), BundleDir.IsValid(), PrimaryTool.IsValid(),
// BibTool.IsValid(), Compile.IsValid(), SearchPath.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Prefix.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.BundleDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.PrimaryTool.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.BibTool.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Compile.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.SearchPath.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the PrefixPath.
func (p PrefixPath) String() string { return string(p) }

// IsValid returns whether the PrefixPath is valid.
// The zero value ("") is valid (means "auto-detect the prefix").
// Non-zero values must not be whitespace-only.
func (p PrefixPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidPrefixPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPrefixPathError.
func (e *InvalidPrefixPathError) Error() string {
	return fmt.Sprintf("invalid prefix path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidPrefixPath for errors.Is() compatibility.
func (e *InvalidPrefixPathError) Unwrap() error { return ErrInvalidPrefixPath }

// String returns the string representation of the TexmfPath.
func (p TexmfPath) String() string { return string(p) }

// IsValid returns whether the TexmfPath is valid.
// The zero value ("") is valid (means "leave TEXMFHOME alone").
// Non-zero values must not be whitespace-only.
func (p TexmfPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidTexmfPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTexmfPathError.
func (e *InvalidTexmfPathError) Error() string {
	return fmt.Sprintf("invalid texmf path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidTexmfPath for errors.Is() compatibility.
func (e *InvalidTexmfPathError) Unwrap() error { return ErrInvalidTexmfPath }

// String returns the string representation of the ToolName.
func (n ToolName) String() string { return string(n) }

// IsValid returns whether the ToolName is valid.
// The zero value ("") is valid (means "use the built-in default").
// Non-zero values must not be whitespace-only and must not contain
// path separators.
func (n ToolName) IsValid() (bool, []error) {
	if n == "" {
		return true, nil
	}
	if strings.TrimSpace(string(n)) == "" || strings.ContainsAny(string(n), `/\`) {
		return false, []error{&InvalidToolNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolNameError.
func (e *InvalidToolNameError) Error() string {
	return fmt.Sprintf("invalid tool name %q: must be a bare file name without path separators", e.Value)
}

// Unwrap returns ErrInvalidToolName for errors.Is() compatibility.
func (e *InvalidToolNameError) Unwrap() error { return ErrInvalidToolName }

// String returns the string representation of the BundleDirName.
func (n BundleDirName) String() string { return string(n) }

// IsValid returns whether the BundleDirName is valid.
// The zero value ("") is valid (means "use the built-in default").
// Non-zero values must be a single path element.
func (n BundleDirName) IsValid() (bool, []error) {
	if n == "" {
		return true, nil
	}
	if strings.TrimSpace(string(n)) == "" || strings.ContainsAny(string(n), `/\`) {
		return false, []error{&InvalidBundleDirNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBundleDirNameError.
func (e *InvalidBundleDirNameError) Error() string {
	return fmt.Sprintf("invalid bundle dir name %q: must be a single path element", e.Value)
}

// Unwrap returns ErrInvalidBundleDirName for errors.Is() compatibility.
func (e *InvalidBundleDirNameError) Unwrap() error { return ErrInvalidBundleDirName }

// String returns the string representation of the TexInputEntry.
func (t TexInputEntry) String() string { return string(t) }

// IsValid returns whether the TexInputEntry is valid.
// A valid entry must be non-empty and not whitespace-only.
func (t TexInputEntry) IsValid() (bool, []error) {
	if strings.TrimSpace(string(t)) == "" {
		return false, []error{&InvalidTexInputEntryError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTexInputEntryError.
func (e *InvalidTexInputEntryError) Error() string {
	return fmt.Sprintf("invalid tex inputs entry %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidTexInputEntry for errors.Is() compatibility.
func (e *InvalidTexInputEntryError) Unwrap() error { return ErrInvalidTexInputEntry }

// Error implements the error interface for InvalidExtraArgsError.
func (e *InvalidExtraArgsError) Error() string {
	return fmt.Sprintf("invalid extra args %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidExtraArgs for errors.Is() compatibility.
func (e *InvalidExtraArgsError) Unwrap() error { return ErrInvalidExtraArgs }

// Error implements the error interface for InvalidInteractionModeError.
func (e *InvalidInteractionModeError) Error() string {
	return fmt.Sprintf("invalid interaction mode %q (valid: batchmode, nonstopmode, scrollmode, errorstopmode)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidInteractionModeError) Unwrap() error {
	return ErrInvalidInteractionMode
}

// String returns the string representation of the InteractionMode.
func (m InteractionMode) String() string { return string(m) }

// IsValid returns whether the InteractionMode is one of the engine's defined
// interaction modes, and a list of validation errors if it is not.
func (m InteractionMode) IsValid() (bool, []error) {
	switch m {
	case InteractionBatchMode, InteractionNonStopMode, InteractionScrollMode, InteractionErrorStopMode:
		return true, nil
	default:
		return false, []error{&InvalidInteractionModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Prefix:      "", // Will auto-detect via TEXENV_PREFIX or the executable's location
		BundleDir:   BundleDirName(texenv.DefaultBundleDir),
		PrimaryTool: ToolName(texenv.DefaultPrimaryTool),
		BibTool:     ToolName(texenv.DefaultBibTool),
		Compile: CompileConfig{
			ExtraArgs:   "",
			Interaction: InteractionNonStopMode,
		},
		SearchPath: SearchPathConfig{
			TexmfHome:         "", // Will leave TEXMFHOME alone if empty
			TexInputs:         []TexInputEntry{},
			UseBundleDefaults: true,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
