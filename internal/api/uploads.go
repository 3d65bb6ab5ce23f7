package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FileStore writes uploaded material content under a base directory and
// hands back the public path clients use to fetch it.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// Save writes content to a fresh uuid-named file. The extension is
// taken from originalName, defaulting to pdf when it has none.
func (f *FileStore) Save(content []byte, originalName string) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	if ext == "" {
		ext = "pdf"
	}
	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(f.dir, name), content, 0o644); err != nil {
		return "", errors.Wrap(err, "write upload")
	}
	return "/uploads/" + name, nil
}
