// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pngme/pngme/pkg/pngfile"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// OutputFormatText renders chunk listings as a styled table.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON renders chunk listings as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatTOML renders chunk listings as TOML.
	OutputFormatTOML OutputFormat = "toml"

	// DefaultChunkType is the private, ancillary, safe-to-copy type used by encode.
	DefaultChunkType = "ruSt"

	maxParallelism = 64
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputFormat selects how `pngme print` renders its listing.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidConfigError collects every field error found in a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the complete pngme configuration.
	Config struct {
		UI     UIConfig     `json:"ui" mapstructure:"ui"`
		Encode EncodeConfig `json:"encode" mapstructure:"encode"`
		Decode DecodeConfig `json:"decode" mapstructure:"decode"`
		Print  PrintConfig  `json:"print" mapstructure:"print"`
	}

	// UIConfig contains terminal presentation settings.
	UIConfig struct {
		// ColorScheme selects the glamour style for issue pages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// EncodeConfig contains defaults for `pngme encode`.
	EncodeConfig struct {
		ChunkType        string `json:"chunk_type" mapstructure:"chunk_type"`
		RequireValidType bool   `json:"require_valid_type" mapstructure:"require_valid_type"`
		Backup           bool   `json:"backup" mapstructure:"backup"`
	}

	// DecodeConfig contains defaults for `pngme decode`.
	DecodeConfig struct {
		Encoding pngfile.TextEncoding `json:"encoding" mapstructure:"encoding"`
	}

	// PrintConfig contains defaults for `pngme print`.
	PrintConfig struct {
		Format OutputFormat `json:"format" mapstructure:"format"`
		// Parallelism bounds how many files are inspected at once.
		Parallelism int `json:"parallelism" mapstructure:"parallelism"`
	}
)

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Encode: EncodeConfig{
			ChunkType:        DefaultChunkType,
			RequireValidType: true,
		},
		Decode: DecodeConfig{
			Encoding: pngfile.EncodingUTF8,
		},
		Print: PrintConfig{
			Format:      OutputFormatText,
			Parallelism: 4,
		},
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// Validate returns an error if the color scheme is not recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// GlamourStyle returns the glamour style name for the scheme.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeLight:
		return "light"
	case ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// Validate returns an error if the output format is not recognized.
func (f OutputFormat) Validate() error {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatTOML:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, toml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := pngfile.ParseTypeCode(c.Encode.ChunkType); err != nil {
		errs = append(errs, fmt.Errorf("encode.chunk_type: %w", err))
	}
	if err := c.Decode.Encoding.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("decode.encoding: %w", err))
	}
	if err := c.Print.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Print.Parallelism < 1 || c.Print.Parallelism > maxParallelism {
		errs = append(errs, fmt.Errorf("print.parallelism: %d is outside 1-%d", c.Print.Parallelism, maxParallelism))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
