// SPDX-License-Identifier: MPL-2.0

package pyenv

import "testing"

func TestParseVersionOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    Version
		wantErr bool
	}{
		{"plain release", "Python 3.12.1\n", Version{3, 12, 1}, false},
		{"two component", "Python 3.10", Version{3, 10, 0}, false},
		{"pre-release suffix", "Python 3.13.0rc1", Version{3, 13, 0}, false},
		{"future major", "Python 4.0.0", Version{4, 0, 0}, false},
		{"missing prefix", "3.12.1", Version{}, true},
		{"garbage", "command not found", Version{}, true},
		{"empty", "", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersionOutput(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersionOutput(%q) error = %v, wantErr %v", tt.out, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseVersionOutput(%q) = %v, want %v", tt.out, got, tt.want)
			}
		})
	}
}

func TestVersionSatisfies(t *testing.T) {
	tests := []struct {
		name    string
		version Version
		want    bool
	}{
		{"exact minimum", Version{3, 10, 0}, true},
		{"higher minor", Version{3, 12, 0}, true},
		{"higher major lower minor", Version{4, 0, 0}, true},
		{"lower minor", Version{3, 9, 18}, false},
		{"lower major higher minor", Version{2, 99, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.version.Satisfies(3, 10); got != tt.want {
				t.Errorf("%v.Satisfies(3, 10) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	if got := (Version{3, 11, 4}).String(); got != "3.11.4" {
		t.Errorf("String() = %q, want 3.11.4", got)
	}
}
