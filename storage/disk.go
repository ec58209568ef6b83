package storage

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type DiskStorage struct {
	// BasePath is a directory that is writable by the current process
	BasePath  string
	PublicURL string
	dirs      cmap.ConcurrentMap[string, bool]
}

func NewDiskStorage(basePath, publicURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &DiskStorage{
		BasePath:  basePath,
		PublicURL: publicURL,
		dirs:      cmap.New[bool](),
	}, nil
}

func (s *DiskStorage) createDir(dir string) error {
	if s.dirs.Has(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s.dirs.Set(dir, true)
	return nil
}

// getFullPath maps a key to a file under BasePath, ".." can't climb out of it
func (s *DiskStorage) getFullPath(key string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(path.Clean("/"+key)))
}

func (s *DiskStorage) Save(ctx context.Context, key, contentType string, reader io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fileName := s.getFullPath(key)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		os.Remove(fileName)
		return "", err
	}
	return s.URL(key), nil
}

func (s *DiskStorage) Serve(key string, request *http.Request, writer http.ResponseWriter) {
	http.ServeFile(writer, request, s.getFullPath(key))
}

func (s *DiskStorage) Delete(ctx context.Context, key string) error {
	return os.Remove(s.getFullPath(key))
}

func (s *DiskStorage) URL(key string) string {
	return joinURL(s.PublicURL, key)
}
