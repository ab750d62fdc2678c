// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pngme/pngme/internal/issue"
	"github.com/pngme/pngme/internal/testutil"
	"github.com/pngme/pngme/pkg/pngfile"
	"github.com/pngme/pngme/pkg/types"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.Encode.ChunkType != "ruSt" {
		t.Errorf("expected default chunk type ruSt, got %s", cfg.Encode.ChunkType)
	}
	if !cfg.Encode.RequireValidType {
		t.Error("expected require_valid_type to be true by default")
	}
	if cfg.Encode.Backup {
		t.Error("expected backup to be false by default")
	}
	if cfg.Decode.Encoding != pngfile.EncodingUTF8 {
		t.Errorf("expected default encoding utf-8, got %s", cfg.Decode.Encoding)
	}
	if cfg.Print.Format != OutputFormatText || cfg.Print.Parallelism != 4 {
		t.Errorf("unexpected print defaults: %+v", cfg.Print)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad color scheme", func(c *Config) { c.UI.ColorScheme = "neon" }, ErrInvalidColorScheme},
		{"bad chunk type", func(c *Config) { c.Encode.ChunkType = "ru5t" }, pngfile.ErrInvalidTypeCode},
		{"short chunk type", func(c *Config) { c.Encode.ChunkType = "ru" }, pngfile.ErrInvalidLength},
		{"bad encoding", func(c *Config) { c.Decode.Encoding = "ascii" }, pngfile.ErrUnknownTextEncoding},
		{"bad format", func(c *Config) { c.Print.Format = "yaml" }, ErrInvalidOutputFormat},
		{"zero parallelism", func(c *Config) { c.Print.Parallelism = 0 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error should wrap ErrInvalidConfig")
			}
		})
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: types.FilesystemPath(t.TempDir()),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if cfg.Encode.ChunkType != DefaultChunkType {
		t.Errorf("ChunkType = %q, want %q", cfg.Encode.ChunkType, DefaultChunkType)
	}
}

func TestLoad_CUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
encode: {
	chunk_type: "stEg"
	backup:     true
}
print: parallelism: 8
decode: encoding: "latin-1"
`)

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: types.FilesystemPath(dir),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Encode.ChunkType != "stEg" || !cfg.Encode.Backup {
		t.Errorf("encode = %+v", cfg.Encode)
	}
	if !cfg.Encode.RequireValidType {
		t.Error("unset keys must keep their defaults")
	}
	if cfg.Print.Parallelism != 8 {
		t.Errorf("parallelism = %d, want 8", cfg.Print.Parallelism)
	}
	if cfg.Decode.Encoding != pngfile.EncodingLatin1 {
		t.Errorf("encoding = %q, want latin-1", cfg.Decode.Encoding)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad enum", `print: format: "yaml"`, "print.format"},
		{"bad chunk type", `encode: chunk_type: "r1St"`, "encode.chunk_type"},
		{"unknown key", `colour: "red"`, "colour"},
		{"syntax error", `ui: {`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
			if err == nil {
				t.Fatal("loadWithOptions() succeeded, want schema error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.IssueID != issue.ConfigLoadFailedId {
				t.Errorf("error should be an ActionableError pointing at ConfigLoadFailedId, got %T", err)
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(missing)})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("error = %v, want config file not found", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	// Not parallel: t.Setenv.
	t.Setenv("PNGME_ENCODE_CHUNK_TYPE", "enVy")
	t.Setenv("PNGME_UI_VERBOSE", "true")

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if cfg.Encode.ChunkType != "enVy" {
		t.Errorf("ChunkType = %q, want enVy", cfg.Encode.ChunkType)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose = false, want true from env")
	}
}

func TestLoad_EnvOverrideValidated(t *testing.T) {
	t.Setenv("PNGME_PRINT_FORMAT", "xml")

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Fatalf("error = %v, want ErrInvalidOutputFormat", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := loadWithOptions(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Encode.ChunkType = "stEg"
	want.Print.Format = OutputFormatJSON

	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(want))

	got, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	// Not parallel: mutates the package-level config dir override.
	dir := filepath.Join(t.TempDir(), "pngme")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}
	if !fileExists(path) {
		t.Fatalf("CreateDefaultConfig() did not create %s", path)
	}

	if err := os.WriteFile(path, []byte("// edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("second CreateDefaultConfig() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "// edited\n" {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("empty LoadOptions should be valid, got %v", err)
	}
	err := LoadOptions{ConfigFilePath: "   "}.Validate()
	if !errors.Is(err, ErrInvalidLoadOptions) || !errors.Is(err, types.ErrInvalidFilesystemPath) {
		t.Errorf("whitespace path error = %v", err)
	}
}

func TestFormatCUEPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"print"}, "print"},
		{[]string{"print", "format"}, "print.format"},
		{[]string{"list", "0", "name"}, "list[0].name"},
	}
	for _, tt := range tests {
		if got := formatCUEPath(tt.path); got != tt.want {
			t.Errorf("formatCUEPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := checkFileSize(make([]byte, 10), 10, "a.cue"); err != nil {
		t.Errorf("checkFileSize at limit = %v", err)
	}
	if err := checkFileSize(make([]byte, 11), 10, "a.cue"); err == nil {
		t.Error("checkFileSize over limit should fail")
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG lookup only applies to Linux and other Unix systems")
	}

	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() with XDG_CONFIG_HOME = %q, want %q", dir, want)
	}
}
