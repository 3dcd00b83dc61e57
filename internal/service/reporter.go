package service

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/raphaelgruber/spheres-go/internal/models"
)

// Reporter receives the outcome of an import.
type Reporter interface {
	Report(report models.ImportReport)
}

// LogReporter reports through a structured logger.
type LogReporter struct {
	Logger *slog.Logger
}

// Report logs the counts at info level.
func (r LogReporter) Report(report models.ImportReport) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(report.String(),
		"displayed", report.Displayed,
		"filtered", report.Filtered)
}

// WriterReporter writes the report line to W.
type WriterReporter struct {
	W io.Writer
}

// Report writes "Displayed N spheres, filtered M others." followed by a newline.
func (r WriterReporter) Report(report models.ImportReport) {
	fmt.Fprintln(r.W, report.String())
}

// MultiReporter fans a report out to several reporters.
type MultiReporter []Reporter

// Report forwards the report to every reporter in order.
func (m MultiReporter) Report(report models.ImportReport) {
	for _, r := range m {
		r.Report(report)
	}
}
