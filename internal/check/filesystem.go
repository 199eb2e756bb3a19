package check

import (
	"os"

	"github.com/pkg/errors"
	"github.com/pojntfx/corsfs/pkg/config"
)

func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(err, "could not stat root")
	}

	if !info.IsDir() {
		return config.ErrRootNotADirectory
	}

	return nil
}
