package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// BackupManager copies original export files into a backup directory
// before any cleaning touches them.
type BackupManager struct {
	backupDir string
	logger    *slog.Logger
}

// NewBackupManager creates a backup manager writing into backupDir.
func NewBackupManager(backupDir string, logger *slog.Logger) *BackupManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupManager{backupDir: backupDir, logger: logger}
}

// BackupAll copies each file into the backup directory, skipping files
// that already have a backup. Returns the number of files copied.
func (b *BackupManager) BackupAll(files []FileInfo) (int, error) {
	if err := os.MkdirAll(b.backupDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create backup directory: %w", err)
	}

	copied := 0
	for _, file := range files {
		dst := filepath.Join(b.backupDir, file.Name)
		if _, err := os.Stat(dst); err == nil {
			b.logger.Debug("backup already exists", slog.String("file", file.Name))
			continue
		}

		if err := copyFile(file.Path, dst); err != nil {
			return copied, fmt.Errorf("failed to back up %s: %w", file.Name, err)
		}
		b.logger.Info("backed up file", slog.String("file", file.Name))
		copied++
	}

	return copied, nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return dstFile.Sync()
}
