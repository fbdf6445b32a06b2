package generator

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/repository"
)

// WriteRoutes writes routes in the routes file format, header first.
func WriteRoutes(w io.Writer, routes []domain.Edge) error {
	buf := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(buf, repository.RecordHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, route := range routes {
		if _, err := fmt.Fprintln(buf, repository.EncodeRecord(route)); err != nil {
			return fmt.Errorf("write route %s: %w", route, err)
		}
	}
	return buf.Flush()
}

// WriteJSON writes the network as indented JSON.
func WriteJSON(w io.Writer, network Network) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(network); err != nil {
		return fmt.Errorf("encode network: %w", err)
	}
	return nil
}

// WriteRoutesFile creates path, including parent directories, and writes routes to it.
func WriteRoutesFile(path string, routes []domain.Edge) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return writeAndClose(path, file, routes)
}

// writeAndClose writes routes to wc and closes it. A failed close is reported
// since buffered data may not have reached the disk.
func writeAndClose(name string, wc io.WriteCloser, routes []domain.Edge) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	if err := WriteRoutes(wc, routes); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
