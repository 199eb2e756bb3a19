package check

import (
	"github.com/pojntfx/corsfs/pkg/config"
)

func CheckCompressionFormat(compressionFormat string) error {
	for _, candidate := range config.KnownCompressionFormats {
		if compressionFormat == candidate {
			return nil
		}
	}

	return config.ErrCompressionFormatUnknown
}
