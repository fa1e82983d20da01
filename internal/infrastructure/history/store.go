package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/tagctl/internal/domain"
	"github.com/felixgeelhaar/tagctl/internal/pathutil"
)

// DefaultMaxReleases is the default number of releases to keep.
const DefaultMaxReleases = 500

// FileStore provides JSON file-based storage for the release log.
type FileStore struct {
	Path        string
	MaxReleases int
}

// Note: fileLock and acquireLock/release are defined in platform-specific files:
// - lock_unix.go for Unix systems (Linux, macOS, BSD)
// - lock_windows.go for Windows

// Load reads the release log from the JSON file.
// Returns an empty history if the file doesn't exist.
func (s *FileStore) Load() (domain.History, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.History{}, nil
		}
		return domain.History{}, err
	}

	var h domain.History
	if err := json.Unmarshal(data, &h); err != nil {
		return domain.History{}, err
	}

	return h, nil
}

// Save writes the release log to the JSON file.
func (s *FileStore) Save(h domain.History) error {
	path, err := pathutil.ValidatePath(s.Path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Append adds a release to the log and saves it. If MaxReleases is set,
// older entries are removed to maintain the limit. Uses file locking to
// prevent race conditions with concurrent processes.
func (s *FileStore) Append(release domain.Release) error {
	lock, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer lock.release()

	h, err := s.Load()
	if err != nil {
		return err
	}

	h.Releases = append(h.Releases, release)

	max := s.MaxReleases
	if max == 0 {
		max = DefaultMaxReleases
	}
	if len(h.Releases) > max {
		h.Releases = h.Releases[len(h.Releases)-max:]
	}

	return s.Save(h)
}
