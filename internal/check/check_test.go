package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pojntfx/corsfs/pkg/config"
)

func TestCheckPort(t *testing.T) {
	tests := []struct {
		name    string
		rawPort string
		want    int
		wantErr error
	}{
		{"Can parse a regular port", "8080", 8080, nil},
		{"Can parse the ephemeral port", "0", 0, nil},
		{"Can parse the highest port", "65535", 65535, nil},
		{"Can't parse an empty port", "", -1, config.ErrPortMissing},
		{"Can't parse a non-integer port", "http", -1, config.ErrPortNotAnInteger},
		{"Can't parse a fractional port", "80.5", -1, config.ErrPortNotAnInteger},
		{"Can't parse a negative port", "-1", -1, config.ErrPortOutOfRange},
		{"Can't parse a port above the range", "65536", -1, config.ErrPortOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPort(tt.rawPort)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckPort() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if got != tt.want {
				t.Errorf("CheckPort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckCompressionFormat(t *testing.T) {
	for _, format := range config.KnownCompressionFormats {
		if err := CheckCompressionFormat(format); err != nil {
			t.Errorf("CheckCompressionFormat(%q) error = %v", format, err)
		}
	}

	if err := CheckCompressionFormat("brotli"); !errors.Is(err, config.ErrCompressionFormatUnknown) {
		t.Errorf("CheckCompressionFormat() error = %v, wantErr %v", err, config.ErrCompressionFormatUnknown)
	}
}

func TestCheckRoot(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(file, []byte("test"), os.ModePerm); err != nil {
		t.Fatal(err)
	}

	if err := CheckRoot(dir); err != nil {
		t.Errorf("CheckRoot() error = %v", err)
	}

	if err := CheckRoot(file); !errors.Is(err, config.ErrRootNotADirectory) {
		t.Errorf("CheckRoot() error = %v, wantErr %v", err, config.ErrRootNotADirectory)
	}

	if err := CheckRoot(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("CheckRoot() error = %v, want an error", err)
	}
}

func TestCheckBindAddress(t *testing.T) {
	if err := CheckBindAddress(config.DefaultBindAddress); err != nil {
		t.Errorf("CheckBindAddress() error = %v", err)
	}

	if err := CheckBindAddress(" "); !errors.Is(err, config.ErrBindAddressEmpty) {
		t.Errorf("CheckBindAddress() error = %v, wantErr %v", err, config.ErrBindAddressEmpty)
	}
}
