package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/clipshelf/clipshelf/internal/usecase"
)

// LocalStorage persists video payloads on the local filesystem. Payloads
// are streamed into a temp file and published with an atomic rename, so a
// cancelled or failed upload leaves either the previous payload or none.
// The content type recorded at write time lives in a sidecar file next to
// the payload.
type LocalStorage struct {
	baseDir string

	mu   sync.Mutex
	keys map[int64]*sync.Mutex
}

var _ usecase.FileStorageProvider = (*LocalStorage)(nil)

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{
		baseDir: baseDir,
		keys:    make(map[int64]*sync.Mutex),
	}, nil
}

// Save fully consumes r and persists it keyed by id, overwriting any
// prior payload. Concurrent saves on the same id serialize; the last
// writer wins.
func (s *LocalStorage) Save(ctx context.Context, id int64, contentType string, r io.Reader) error {
	lock := s.keyLock(id)
	lock.Lock()
	defer lock.Unlock()

	tmpData := filepath.Join(s.baseDir, "tmp-"+uuid.NewString())
	f, err := os.Create(tmpData)
	if err != nil {
		return fmt.Errorf("%w: create temp payload: %v", usecase.ErrStorage, err)
	}

	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		os.Remove(tmpData)
		return fmt.Errorf("%w: write payload %d: %v", usecase.ErrStorage, id, err)
	}

	tmpType := tmpData + ".type"
	if err := os.WriteFile(tmpType, []byte(contentType), 0o644); err != nil {
		os.Remove(tmpData)
		return fmt.Errorf("%w: write content type %d: %v", usecase.ErrStorage, id, err)
	}

	if err := os.Rename(tmpType, s.typePath(id)); err != nil {
		os.Remove(tmpData)
		os.Remove(tmpType)
		return fmt.Errorf("%w: publish content type %d: %v", usecase.ErrStorage, id, err)
	}
	if err := os.Rename(tmpData, s.dataPath(id)); err != nil {
		os.Remove(tmpData)
		return fmt.Errorf("%w: publish payload %d: %v", usecase.ErrStorage, id, err)
	}
	return nil
}

func (s *LocalStorage) Exists(_ context.Context, id int64) (bool, error) {
	_, err := os.Stat(s.dataPath(id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat payload %d: %v", usecase.ErrStorage, id, err)
}

// Open returns the payload stream and the content type recorded at write
// time. The pair is read under the per-key lock so a concurrent overwrite
// cannot hand back a mismatched combination.
func (s *LocalStorage) Open(_ context.Context, id int64) (io.ReadCloser, string, error) {
	lock := s.keyLock(id)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(s.dataPath(id))
	if os.IsNotExist(err) {
		return nil, "", fmt.Errorf("payload %d: %w", id, usecase.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: open payload %d: %v", usecase.ErrStorage, id, err)
	}

	ct, err := os.ReadFile(s.typePath(id))
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("%w: read content type %d: %v", usecase.ErrStorage, id, err)
	}
	return f, string(ct), nil
}

func (s *LocalStorage) keyLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.keys[id]
	if !ok {
		lock = &sync.Mutex{}
		s.keys[id] = lock
	}
	return lock
}

func (s *LocalStorage) dataPath(id int64) string {
	return filepath.Join(s.baseDir, strconv.FormatInt(id, 10)+".data")
}

func (s *LocalStorage) typePath(id int64) string {
	return filepath.Join(s.baseDir, strconv.FormatInt(id, 10)+".type")
}
