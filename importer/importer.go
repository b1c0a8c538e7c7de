// Package importer converts CSV files of Wi-Fi networks into suggestions that
// can be registered with the OS.
//
// The expected file has a header line followed by rows of exactly three
// columns: ssid, password and security type. Rows that can't be turned into a
// suggestion are reported as RowErrors and never abort the pass; only a
// failure to open or read the file does.
package importer

import (
	"errors"
	"io"
	"log/slog"

	"github.com/shazow/wifimport/wifi"
)

// ImportResult is the outcome of a full import pass.
type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	Errors       []string `json:"errors"`
	// Failures are the errors behind Errors, in the same order.
	Failures []*RowError `json:"-"`
}

// registrationFailedMessage is appended when the bulk registration fails.
const registrationFailedMessage = "Failed to add network suggestions"

// Importer runs the parse and validate pass over a Source.
type Importer struct {
	logger *slog.Logger
}

// New creates an Importer that traces to logger. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{logger: logger}
}

// Collect reads every row from src and partitions the results into valid
// suggestions and row errors, both in row order.
//
// If src can't be opened or read, a single critical error is appended after
// whatever was collected up to that point.
func (im *Importer) Collect(src Source) ([]wifi.Suggestion, []*RowError) {
	var (
		suggestions []wifi.Suggestion
		rowErrors   []*RowError
	)

	rc, err := src.Open()
	if err != nil {
		im.logger.Error("critical error during network import", "error", err)
		return nil, []*RowError{criticalError(err)}
	}
	defer rc.Close()

	rows := NewRowReader(rc)
	for {
		rec, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			im.logger.Debug("skipping row", "row", rowErr.Row, "reason", rowErr.Message)
			rowErrors = append(rowErrors, rowErr)
			continue
		}
		if err != nil {
			im.logger.Error("critical error during network import", "after_row", rows.Row(), "error", err)
			rowErrors = append(rowErrors, criticalError(err))
			break
		}

		im.logger.Debug("processing network", "row", rec.Row, "ssid", rec.SSID, "security", rec.Security)
		s, err := Validate(rec.SSID, rec.Password, rec.Security)
		if err != nil {
			rowErrors = append(rowErrors, &RowError{Row: rec.Row, Kind: KindValidation, Message: err.Error()})
			continue
		}
		suggestions = append(suggestions, s)
	}

	im.logger.Debug("collected networks", "suggestions", len(suggestions), "errors", len(rowErrors))
	return suggestions, rowErrors
}

// ImportAndRegister collects the suggestions from src and registers all of
// them with r in a single call.
//
// The registration is all or nothing: if it fails, every suggestion is counted
// as a failure.
func (im *Importer) ImportAndRegister(src Source, r wifi.Registrar) ImportResult {
	suggestions, rowErrors := im.Collect(src)

	if len(suggestions) > 0 {
		if err := r.AddSuggestions(suggestions); err != nil {
			im.logger.Error("failed to add network suggestions", "count", len(suggestions), "error", err)
			failures := append(rowErrors, &RowError{Kind: KindRegistration, Message: registrationFailedMessage})
			return ImportResult{
				SuccessCount: 0,
				FailureCount: len(suggestions) + len(rowErrors),
				Errors:       Messages(failures),
				Failures:     failures,
			}
		}
	}

	im.logger.Info("imported networks", "suggested", len(suggestions), "failed", len(rowErrors))
	return ImportResult{
		SuccessCount: len(suggestions),
		FailureCount: len(rowErrors),
		Errors:       Messages(rowErrors),
		Failures:     rowErrors,
	}
}

// Messages renders row errors as user-facing strings, in order.
func Messages(rowErrors []*RowError) []string {
	messages := make([]string, 0, len(rowErrors))
	for _, e := range rowErrors {
		messages = append(messages, e.Error())
	}
	return messages
}
