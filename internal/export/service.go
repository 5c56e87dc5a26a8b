package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/casa/internal/encoding"
	"github.com/MrJamesThe3rd/casa/internal/report"
)

// Reporter renders the current split as UTF-8.
type Reporter interface {
	Report(ctx context.Context, w io.Writer) error
}

// Service writes the report in the charset residents' spreadsheet software expects.
type Service struct {
	reports Reporter
	charset encoding.Charset
}

func NewService(reports Reporter, charset encoding.Charset) *Service {
	return &Service{reports: reports, charset: charset}
}

func (s *Service) Charset() encoding.Charset {
	return s.charset
}

// Write streams the encoded report to w.
func (s *Service) Write(ctx context.Context, w io.Writer) error {
	ew, err := encoding.NewWriter(w, s.charset)
	if err != nil {
		return err
	}

	if err := s.reports.Report(ctx, ew); err != nil {
		return err
	}

	if err := ew.Close(); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return nil
}

// Export writes the report to dir under the standard file name and returns its path.
// The file is written to a temporary name first so a failed export leaves no partial report.
func (s *Service) Export(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".casa-report-*")
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	tmp := f.Name()
	defer os.Remove(tmp)

	if err := s.Write(ctx, f); err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	path := filepath.Join(dir, report.Filename)
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("renaming report: %w", err)
	}

	return path, nil
}
