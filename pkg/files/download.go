package files

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Download is the non-interactive Saver: the file lands in Dir under the
// suggested name, replacing any previous copy.
type Download struct {
	Dir string
}

func (d Download) Save(ctx context.Context, suggestedName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := filepath.Base(strings.TrimSpace(suggestedName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("files: invalid file name %q", suggestedName)
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)
	if err := writeFile(path, data); err != nil {
		return "", fmt.Errorf("files: save %s: %w", path, err)
	}
	return path, nil
}
