package service

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/cflow/domain"
)

// ReportWriterImpl implements domain.ReportWriter
type ReportWriterImpl struct{}

// NewReportWriter creates a report writer
func NewReportWriter() domain.ReportWriter {
	return &ReportWriterImpl{}
}

// Write writes a report to outputPath when given, otherwise to writer
func (rw *ReportWriterImpl) Write(writer io.Writer, outputPath string, writeFunc func(io.Writer) error) error {
	if outputPath == "" {
		if writer == nil {
			writer = os.Stdout
		}
		return writeFunc(writer)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError(outputPath, err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return domain.NewOutputError(outputPath, err)
	}
	defer file.Close()

	if err := writeFunc(file); err != nil {
		return domain.NewOutputError(outputPath, err)
	}
	return nil
}
