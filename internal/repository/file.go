package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vanshika/routeplanner/internal/domain"
)

// FileStore persists routes as line-delimited text, one "ORIGIN,DESTINATION,COST"
// record per line, below a header line.
type FileStore struct {
	mu         sync.Mutex
	path       string
	syncWrites bool
	logger     *slog.Logger
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created on first append.
func NewFileStore(path string, syncWrites bool, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:       path,
		syncWrites: syncWrites,
		logger:     logger.With("store", "file", "path", path),
	}
}

func (s *FileStore) Append(_ context.Context, edge domain.Edge) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create routes directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open routes file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close routes file: %w", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat routes file: %w", err)
	}

	var line string
	if size := info.Size(); size == 0 {
		line = RecordHeader + "\n"
	} else {
		// A file edited by hand may end without a newline.
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil {
			return fmt.Errorf("read routes file tail: %w", err)
		}
		if last[0] != '\n' {
			line = "\n"
		}
	}
	line += EncodeRecord(edge) + "\n"

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append route %s->%s: %w", edge.Origin, edge.Destination, err)
	}
	if s.syncWrites {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("sync routes file: %w", err)
		}
	}
	return nil
}

// LoadAll reads every record. A missing file is an empty store. The first line
// is skipped when it is the header.
func (s *FileStore) LoadAll(ctx context.Context) ([]domain.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open routes file: %w", err)
	}
	defer f.Close()

	var edges []domain.Edge
	reader := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read routes file: %w", readErr)
		}
		line = trimLineEnd(line)

		switch {
		case lineNo == 1 && IsHeader(line), isBlank(line):
		case len(line) > maxRecordLength:
			s.logger.WarnContext(ctx, "skipping oversized route record", "line", lineNo, "length", len(line))
		default:
			edge, err := DecodeRecord(line)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping malformed route record", "line", lineNo, "record", line, "error", err)
				break
			}
			edges = append(edges, edge)
		}

		if readErr != nil {
			return edges, nil
		}
	}
}

func (s *FileStore) Close(context.Context) error { return nil }

// Ping checks that the routes file, if present, is readable.
func (s *FileStore) Ping(context.Context) error {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// maxRecordLength bounds a single record. Longer lines cannot be a valid route
// and are skipped rather than logged in full.
const maxRecordLength = 4096

func trimLineEnd(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func isBlank(line string) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}
