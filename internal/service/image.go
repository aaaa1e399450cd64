package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ImageService struct {
	Fs        afero.Fs
	UploadDir string
	TmpDir    string
	// NewName generates the stored file name; defaults to 32 hex chars.
	NewName func() string
}

func (s *ImageService) newName() string {
	if s.NewName != nil {
		return s.NewName()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Upload writes r to a temp file and then moves it into UploadDir under the
// same generated name. The original file name is only logged.
func (s *ImageService) Upload(ctx context.Context, r io.Reader, originalName string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "image.upload", "original_name", originalName)

	name := s.newName()
	tmpPath := filepath.Join(s.TmpDir, name)
	targetPath := filepath.Join(s.UploadDir, name)

	if err := s.Fs.MkdirAll(s.TmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w: %w", ErrIO, err)
	}

	if err := s.writeTemp(tmpPath, r); err != nil {
		_ = s.Fs.Remove(tmpPath)
		l.Error("upload_error", "reason", "cannot write temp file", "error", err)
		return "", fmt.Errorf("write temp file: %w: %w", ErrIO, err)
	}

	if err := s.Fs.MkdirAll(s.UploadDir, 0o755); err != nil {
		_ = s.Fs.Remove(tmpPath)
		return "", fmt.Errorf("create upload dir: %w: %w", ErrIO, err)
	}

	if err := s.Fs.Rename(tmpPath, targetPath); err != nil {
		_ = s.Fs.Remove(tmpPath)
		l.Error("upload_error", "reason", "cannot move file", "error", err)
		return "", fmt.Errorf("move upload: %w: %w", ErrIO, err)
	}

	l.Info("upload_success", "filename", name)
	return name, nil
}

func (s *ImageService) writeTemp(path string, r io.Reader) error {
	f, err := s.Fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
