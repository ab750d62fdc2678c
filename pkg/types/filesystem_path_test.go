// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path FilesystemPath
		want bool
	}{
		{"absolute path", FilesystemPath("/tmp/dice.png"), true},
		{"relative path", FilesystemPath("dice.png"), true},
		{"path with spaces", FilesystemPath("/path/to/my image.png"), true},
		{"empty is invalid", FilesystemPath(""), false},
		{"whitespace only is invalid", FilesystemPath("   "), false},
		{"tab only is invalid", FilesystemPath("\t"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if (err == nil) != tt.want {
				t.Fatalf("FilesystemPath(%q).Validate() error = %v, wantValid %v", tt.path, err, tt.want)
			}
			if !tt.want {
				var fpErr *InvalidFilesystemPathError
				if !errors.As(err, &fpErr) || !errors.Is(err, ErrInvalidFilesystemPath) {
					t.Errorf("error should be *InvalidFilesystemPathError wrapping the sentinel, got: %T", err)
				}
			}
		})
	}
}

func TestFilesystemPath_BackupPath(t *testing.T) {
	t.Parallel()

	if got := FilesystemPath("dice.png").BackupPath(); got != "dice.png.bak" {
		t.Errorf("BackupPath() = %q, want %q", got, "dice.png.bak")
	}
}
