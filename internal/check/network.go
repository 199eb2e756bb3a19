package check

import (
	"strconv"
	"strings"

	"github.com/pojntfx/corsfs/pkg/config"
)

// CheckPort parses a TCP port number. Port 0 is accepted and lets the
// operating system pick a free port.
func CheckPort(rawPort string) (int, error) {
	if strings.TrimSpace(rawPort) == "" {
		return -1, config.ErrPortMissing
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return -1, config.ErrPortNotAnInteger
	}

	if port < config.MinPort || port > config.MaxPort {
		return -1, config.ErrPortOutOfRange
	}

	return port, nil
}

func CheckBindAddress(bindAddress string) error {
	if strings.TrimSpace(bindAddress) == "" {
		return config.ErrBindAddressEmpty
	}

	return nil
}

func CheckVerbosity(verbosity int) error {
	if verbosity < 0 || verbosity > 4 {
		return config.ErrVerbosityOutOfRange
	}

	return nil
}
