package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

// AvatarStore keeps avatar files flat in a single directory. Names coming from
// clients are reduced to their base name before touching the filesystem.
type AvatarStore struct {
	dir           string
	defaultAvatar string
}

var _ ports.AvatarStore = (*AvatarStore)(nil)

func NewAvatarStore(dir, defaultAvatar string) (*AvatarStore, error) {
	if dir == "" {
		return nil, errors.New("avatar store: directory is required")
	}
	if defaultAvatar == "" {
		defaultAvatar = domain.DefaultAvatar
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("avatar store: create %s: %w", dir, err)
	}
	return &AvatarStore{dir: dir, defaultAvatar: defaultAvatar}, nil
}

// FileName builds the stored name: the original stem without whitespace, a
// random uuid, then the original extension.
func FileName(originalName string) string {
	base := filepath.Base(originalName)
	ext := filepath.Ext(base)
	stem := strings.Join(strings.Fields(strings.TrimSuffix(base, ext)), "")
	return stem + uuid.NewString() + ext
}

func (s *AvatarStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("save avatar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}

	name := FileName(originalName)
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}
	return name, nil
}

// Remove deletes a stored avatar. The default avatar and missing files are ignored.
func (s *AvatarStore) Remove(_ context.Context, name string) error {
	base, ok := s.clean(name)
	if !ok || base == s.defaultAvatar {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, base))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove avatar: %w", err)
	}
	return nil
}

func (s *AvatarStore) Path(name string) string {
	if base, ok := s.clean(name); ok {
		full := filepath.Join(s.dir, base)
		if info, err := os.Stat(full); err == nil && info.Mode().IsRegular() {
			return full
		}
	}
	return filepath.Join(s.dir, s.defaultAvatar)
}

func (s *AvatarStore) clean(name string) (string, bool) {
	base := filepath.Base(name)
	switch base {
	case ".", "..", string(filepath.Separator), "":
		return "", false
	}
	return base, true
}
