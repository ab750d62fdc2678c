// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateCUE renders cfg as a config file that validates against #Config.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pngme configuration\n")
	sb.WriteString("// See 'pngme config --help' for details.\n\n")

	sb.WriteString("ui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %t\n", cfg.UI.Verbose)
	sb.WriteString("}\n\n")

	sb.WriteString("encode: {\n")
	fmt.Fprintf(&sb, "\tchunk_type:         %q\n", cfg.Encode.ChunkType)
	fmt.Fprintf(&sb, "\trequire_valid_type: %t\n", cfg.Encode.RequireValidType)
	fmt.Fprintf(&sb, "\tbackup:             %t\n", cfg.Encode.Backup)
	sb.WriteString("}\n\n")

	sb.WriteString("decode: {\n")
	fmt.Fprintf(&sb, "\tencoding: %q\n", cfg.Decode.Encoding.String())
	sb.WriteString("}\n\n")

	sb.WriteString("print: {\n")
	fmt.Fprintf(&sb, "\tformat:      %q\n", cfg.Print.Format)
	fmt.Fprintf(&sb, "\tparallelism: %d\n", cfg.Print.Parallelism)
	sb.WriteString("}\n")

	return sb.String()
}

// CreateDefaultConfig writes the default configuration to the config
// directory. An existing file is left untouched. It returns the file path.
func CreateDefaultConfig() (string, error) {
	path, err := ConfigFilePath()
	if err != nil {
		return "", err
	}
	if fileExists(path) {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
