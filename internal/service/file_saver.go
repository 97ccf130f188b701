package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DirSaver writes exported files into a directory. A file with the same
// name is replaced.
type DirSaver struct {
	Dir string
}

func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{Dir: dir}
}

// SaveText writes content to Dir/filename through a temporary file and a
// rename, so a reader never sees a partial report.
func (d *DirSaver) SaveText(ctx context.Context, filename, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename == "" || filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return "", fmt.Errorf("invalid export filename %q", filename)
	}
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	final := filepath.Join(d.Dir, filename)
	tmp := filepath.Join(d.Dir, fmt.Sprintf(".%s.%s.tmp", filename, uuid.New().String()))
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("moving export into place: %w", err)
	}
	return final, nil
}
