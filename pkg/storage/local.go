package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Local writes material files below a directory served as static media.
type Local struct {
	root      string
	namespace string
	urlPrefix string
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLocal creates <root>/<namespace> when missing. Returned references look like <urlPrefix>/<namespace>/<file>.
func NewLocal(root, namespace, urlPrefix string, logger zerolog.Logger) (*Local, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("storage root must be provided")
	}
	namespace = strings.Trim(namespace, "/ ")

	if err := os.MkdirAll(filepath.Join(root, namespace), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &Local{
		root:      root,
		namespace: namespace,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		logger:    logger.With().Str("component", "local_storage").Logger(),
		now:       time.Now,
	}, nil
}

// Root returns the directory that must be served under the URL prefix.
func (s *Local) Root() string {
	return s.root
}

// Upload copies reader into a new file. Names never collide because a timestamp is appended.
func (s *Local) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || stem == "." {
		stem = "material"
	}
	fileName := fmt.Sprintf("%s-%d%s", stem, s.now().UnixNano(), ext)

	target := filepath.Join(s.root, s.namespace, fileName)
	file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create material file: %w", err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write material file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close material file: %w", err)
	}

	s.logger.Info().Str("file", fileName).Msg("material stored on disk")
	return path.Join(s.urlPrefix, s.namespace, fileName), nil
}
