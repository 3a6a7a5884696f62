package localfs

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"mediaforge/internal/ports"
)

// LocalFS implements ports.StorageProvider on the local filesystem. Objects
// live under root/bucket/key; ObjectURL joins a configured public base URL,
// which is expected to be served by a reverse proxy or a static file server.
type LocalFS struct {
	root    string
	bucket  string
	baseURL string
}

func New(root, bucket, baseURL string) *LocalFS {
	return &LocalFS{root: root, bucket: bucket, baseURL: baseURL}
}

func (l *LocalFS) Provider() string { return "localfs" }

func (l *LocalFS) EnsureBucket(ctx context.Context) error {
	return os.MkdirAll(filepath.Join(l.root, l.bucket), 0o755)
}

func (l *LocalFS) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	if in.ObjectKey == "" {
		return ports.PutObjectOutput{}, fmt.Errorf("object_key is required")
	}

	dst := l.path(in.ObjectKey)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ports.PutObjectOutput{}, err
	}

	f, err := os.Create(dst)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}
	defer f.Close()

	n, err := io.Copy(f, in.Reader)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}

	url, _ := l.ObjectURL(ctx, in.ObjectKey)
	return ports.PutObjectOutput{ObjectKey: in.ObjectKey, Size: n, URL: url}, nil
}

func (l *LocalFS) GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error) {
	p := l.path(objectKey)
	f, err := os.Open(p)
	if err != nil {
		return nil, "", 0, err
	}

	if st, statErr := f.Stat(); statErr == nil {
		size = st.Size()
	}

	// Prefer extension-based type. If empty, sniff first bytes.
	contentType = mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		_, _ = f.Seek(0, 0)
		contentType = http.DetectContentType(buf[:n])
	}

	return f, contentType, size, nil
}

func (l *LocalFS) DeleteObject(ctx context.Context, objectKey string) error {
	return os.Remove(l.path(objectKey))
}

func (l *LocalFS) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	if l.baseURL == "" {
		return "file://" + l.path(objectKey), nil
	}
	return fmt.Sprintf("%s/%s/%s", l.baseURL, l.bucket, objectKey), nil
}

func (l *LocalFS) path(objectKey string) string {
	return filepath.Join(l.root, l.bucket, filepath.FromSlash(objectKey))
}
