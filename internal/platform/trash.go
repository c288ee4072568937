package platform

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// MoveToTrash moves path to the OS trash or recycle bin.
// A path that does not exist is reported without touching the trash.
func (p *Platform) MoveToTrash(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return fmt.Errorf("move to trash: %w", err)
	}
	if err := trashFunc(path); err != nil {
		return fmt.Errorf("move to trash: %w", err)
	}
	p.logger.Info("Moved to trash", zap.String("path", path))
	return nil
}
