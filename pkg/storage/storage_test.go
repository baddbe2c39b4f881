package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLocalUploadWritesBelowNamespace(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, "materiales", "/media/", zerolog.New(io.Discard))
	require.NoError(t, err)
	store.now = func() time.Time { return time.Unix(0, 42) }

	url, err := store.Upload(context.Background(), "unit-1.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	require.Equal(t, "/media/materiales/unit-1-42.pdf", url)

	data, err := os.ReadFile(filepath.Join(root, "materiales", "unit-1-42.pdf"))
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(data))
}

func TestLocalUploadDoesNotOverwrite(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "materiales", "/media", zerolog.New(io.Discard))
	require.NoError(t, err)
	store.now = func() time.Time { return time.Unix(0, 7) }

	_, err = store.Upload(context.Background(), "notes.txt", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Upload(context.Background(), "notes.txt", strings.NewReader("second"))
	require.Error(t, err)
}

func TestLocalUploadStripsDirectories(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, "materiales", "/media", zerolog.New(io.Discard))
	require.NoError(t, err)
	store.now = func() time.Time { return time.Unix(0, 1) }

	url, err := store.Upload(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, "/media/materiales/passwd-1", url)
	require.FileExists(t, filepath.Join(root, "materiales", "passwd-1"))
}

func TestNewLocalRequiresRoot(t *testing.T) {
	_, err := NewLocal(" ", "materiales", "/media", zerolog.New(io.Discard))
	require.Error(t, err)
}

func TestCloudinaryFolder(t *testing.T) {
	require.Equal(t, "academy/materiales", cloudinaryFolder("/academy/", "materiales"))
	require.Equal(t, "materiales", cloudinaryFolder("", "materiales"))
}

func TestCloudinaryPublicID(t *testing.T) {
	store := &Cloudinary{now: func() time.Time { return time.Unix(1700000000, 0) }}
	require.Equal(t, "unit-1-worksheet-1700000000", store.publicID("unit 1 worksheet.pdf"))
	require.Equal(t, "material-1700000000", store.publicID("???.pdf"))
}

func TestNewCloudinaryRequiresCredentials(t *testing.T) {
	_, err := NewCloudinary(CloudinaryConfig{CloudName: "demo"}, zerolog.New(io.Discard))
	require.Error(t, err)
}
