package util

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
)

// Source is a read-only view of a file on disk.
//
// The file is memory-mapped so that its digest can be computed without
// copying; Bytes copies the content out when it has to outlive the mapping
// (syntax trees keep a reference to their source). If mmap fails the file
// is read into memory instead.
//
// **Usage:**
//
//	src, err := util.OpenSource(path, logger)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	if cached, ok := cache.Get(src.Digest()); ok {
//	    return cached
//	}
//	content := src.Bytes()
type Source struct {
	Path string

	data   mmap.MMap
	file   *os.File
	mapped bool
}

// OpenSource opens and maps path.
func OpenSource(path string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	if stat.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%q is a directory", path)
	}

	// Empty files cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		return &Source{Path: path}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		logger.Warn("mmap failed, using fallback", "file", path, "size", stat.Size(), "error", err)
		file.Close()

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		return &Source{Path: path, data: mmap.MMap(content)}, nil
	}

	return &Source{Path: path, data: data, file: file, mapped: true}, nil
}

// Digest returns the xxhash of the content.
func (s *Source) Digest() uint64 {
	return xxhash.Sum64(s.data)
}

// Len returns the content size in bytes.
func (s *Source) Len() int {
	return len(s.data)
}

// Bytes returns a copy of the content that stays valid after Close.
func (s *Source) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Close unmaps the file. Safe to call more than once.
func (s *Source) Close() error {
	var err error
	if s.mapped {
		err = s.data.Unmap()
		s.mapped = false
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	s.data = nil
	return err
}

// DigestBytes hashes in-memory content the same way Source.Digest does.
func DigestBytes(content []byte) uint64 {
	return xxhash.Sum64(content)
}
