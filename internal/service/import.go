package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/repository"
)

// maxImportLineLength bounds a single import line. Longer lines are rejected
// and only their prefix is kept in the report.
const maxImportLineLength = 4096

// LineError ties a rejected import line to its position in the input.
type LineError struct {
	Line  int
	Input string
	Err   error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Input, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// ImportError accumulates the lines rejected during a bulk import.
type ImportError struct {
	Errors []LineError
}

func (e *ImportError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d lines rejected:", len(e.Errors))
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *ImportError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}

func (e *ImportError) append(line int, input string, err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, LineError{Line: line, Input: input, Err: err})
}

func (e *ImportError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ImportReport summarises a bulk import.
type ImportReport struct {
	Imported int
	Rejected int
}

// ImportRoutes registers every non-blank line of r in order. A leading
// "origin,destination,cost" header is skipped. Rejected lines do not stop the
// import; they are returned together as an *ImportError.
func (s *RouteService) ImportRoutes(ctx context.Context, r io.Reader) (ImportReport, error) {
	var (
		report    ImportReport
		importErr ImportError
	)

	reader := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return report, fmt.Errorf("read routes: %w", readErr)
		}

		line := strings.TrimSpace(raw)
		switch {
		case line == "", lineNo == 1 && repository.IsHeader(line):
		case len(line) > maxImportLineLength:
			report.Rejected++
			importErr.append(lineNo, line[:32]+"...",
				fmt.Errorf("%w: line is %d bytes long", domain.ErrInvalidFormat, len(line)))
		default:
			if _, err := s.RegisterRoute(ctx, line); err != nil {
				report.Rejected++
				importErr.append(lineNo, line, err)
				break
			}
			report.Imported++
		}

		if readErr != nil {
			break
		}
	}

	s.logger.InfoContext(ctx, "route import finished",
		"imported", report.Imported,
		"rejected", report.Rejected,
	)
	return report, importErr.asError()
}
