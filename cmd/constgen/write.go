package main

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// writeFileAtomic writes data to targetPath through a pending file that is
// fsynced and renamed over the target, so readers never observe partial writes.
func writeFileAtomic(logger zerolog.Logger, targetPath string, data []byte, perm os.FileMode) error {
	pendingFile, err := renameio.NewPendingFile(targetPath, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		// No-op once CloseAtomicallyReplace succeeded.
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str("path", targetPath).Msg("cleanup pending file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", targetPath, err)
	}
	return nil
}
