package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// File persists the override mapping as a single JSON document on disk. Reads
// decode numbers as json.Number so integer and floating-point overrides keep
// their kinds across reloads. Writes replace the document atomically via a
// temp file and rename.
type File struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewFile constructs a file-backed store rooted at path. The file does not
// need to exist yet; a missing file reads as an empty mapping.
func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{path: path, logger: logger}
}

func (s *File) Get(key string) (any, bool) {
	value, ok := s.GetAll()[key]
	return value, ok
}

func (s *File) GetAll() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *File) SetAll(entries map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(cloneEntries(entries))
}

func (s *File) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(map[string]any{})
}

func (s *File) read() map[string]any {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("override file unreadable, treating as empty", "path", s.path, "error", err)
		}
		return map[string]any{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	entries := map[string]any{}
	if err := dec.Decode(&entries); err != nil {
		s.logger.Warn("override file corrupt, treating as empty", "path", s.path, "error", err)
		return map[string]any{}
	}
	return entries
}

func (s *File) write(entries map[string]any) {
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		s.logger.Warn("override mapping not serializable, dropping write", "path", s.path, "error", err)
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Warn("override directory not writable, dropping write", "path", dir, "error", err)
		return
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		s.logger.Warn("override temp file failed, dropping write", "path", dir, "error", err)
		return
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.logger.Warn("override write failed, dropping write", "path", tmpName, "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		s.logger.Warn("override write failed, dropping write", "path", tmpName, "error", err)
		return
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		s.logger.Warn("override replace failed, dropping write", "path", s.path, "error", err)
	}
}
