package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/wifi"
	"github.com/shazow/wifimport/wifi/mock"
)

const exampleCSV = `ssid,password,security
Home,secret,WPA2
Cafe,,OPEN
Lab,,WPA3
Office,hunter2,WEP
`

func newImporter() *importer.Importer {
	return importer.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newBackend() *mock.MockBackend {
	return &mock.MockBackend{
		Caps: wifi.Capabilities{BulkRegistration: true, Proposals: true},
	}
}

func TestRunCheck(t *testing.T) {
	var buf bytes.Buffer

	err := runCheck(&buf, false, newImporter(), importer.BytesSource(exampleCSV))
	if err != nil {
		t.Fatalf("runCheck() failed: %v", err)
	}

	expectedLines := []string{
		"Home\twpa2-personal",
		"Cafe\topen",
		"Row 4: Skipping WPA3 network 'Lab' with empty password",
		"Row 5: Unsupported security type: 'WEP' for network 'Office'",
		"2 valid networks, 2 errors.",
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(expectedLines) {
		t.Fatalf("runCheck() output has wrong number of lines. got=%d, want=%d\n---\n%s\n---", len(lines), len(expectedLines), buf.String())
	}
	for i, expectedLine := range expectedLines {
		if lines[i] != expectedLine {
			t.Errorf("runCheck() output line %d wrong. got=%q, want=%q", i, lines[i], expectedLine)
		}
	}
}

func TestRunCheck_JSON(t *testing.T) {
	var buf bytes.Buffer

	err := runCheck(&buf, true, newImporter(), importer.BytesSource("ssid,password,security\n"))
	if err != nil {
		t.Fatalf("runCheck() failed: %v", err)
	}

	var out struct {
		Suggestions []json.RawMessage `json:"suggestions"`
		Errors      []string          `json:"errors"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if out.Suggestions == nil || out.Errors == nil {
		t.Errorf("empty results should be empty lists, got %s", buf.String())
	}
}

func TestRunImport(t *testing.T) {
	b := newBackend()
	var buf bytes.Buffer

	err := runImport(&buf, false, true, newImporter(), b, importer.BytesSource(exampleCSV))
	if err != nil {
		t.Fatalf("runImport() failed: %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, "2 networks suggested, 2 failed.\n") {
		t.Errorf("runImport() output missing summary. got=%q", output)
	}
	if !strings.Contains(output, "Row 5: Unsupported security type") {
		t.Errorf("runImport() output missing errors. got=%q", output)
	}
	if len(b.Registered()) != 2 {
		t.Errorf("expected 2 registered networks, got %d", len(b.Registered()))
	}
}

func TestRunImport_JSON(t *testing.T) {
	b := newBackend()
	b.AddError = wifi.ErrRegistrationFailed
	var buf bytes.Buffer

	err := runImport(&buf, true, false, newImporter(), b, importer.BytesSource(exampleCSV))
	if err != nil {
		t.Fatalf("runImport() failed: %v", err)
	}

	var result importer.ImportResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if result.SuccessCount != 0 || result.FailureCount != 4 {
		t.Errorf("unexpected counts %+v", result)
	}
	if last := result.Errors[len(result.Errors)-1]; last != "Failed to add network suggestions" {
		t.Errorf("unexpected last error %q", last)
	}
}

func TestRunImport_NotSupported(t *testing.T) {
	b := newBackend()
	b.Caps.BulkRegistration = false

	err := runImport(io.Discard, false, false, newImporter(), b, importer.BytesSource(exampleCSV))
	if !errors.Is(err, wifi.ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestRunBatch(t *testing.T) {
	b := newBackend()
	var data strings.Builder
	data.WriteString("ssid,password,security\n")
	for _, ssid := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		data.WriteString(ssid + ",,OPEN\n")
	}
	var buf bytes.Buffer

	// One Enter between the two batches.
	err := runBatch(&buf, strings.NewReader("\n"), false, newImporter(), b, importer.BytesSource(data.String()))
	if err != nil {
		t.Fatalf("runBatch() failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Showing 5 networks. 2 remaining.",
		"Press Enter for the next batch...",
		"Showing 2 networks. 0 remaining.",
		"All networks have been processed.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("runBatch() output missing %q. got=%q", want, output)
		}
	}
	if proposals := b.Proposals(); len(proposals) != 2 {
		t.Errorf("expected 2 batches, got %d", len(proposals))
	}
}

func TestRunBatch_StopsOnEOF(t *testing.T) {
	b := newBackend()
	data := "ssid,password,security\n" + strings.Repeat("Net,,OPEN\n", 6)

	err := runBatch(io.Discard, strings.NewReader(""), false, newImporter(), b, importer.BytesSource(data))
	if err != nil {
		t.Fatalf("runBatch() failed: %v", err)
	}
	if proposals := b.Proposals(); len(proposals) != 1 {
		t.Errorf("expected to stop after 1 batch, got %d", len(proposals))
	}
}

func TestRunBatch_OnlyErrors(t *testing.T) {
	var buf bytes.Buffer

	err := runBatch(&buf, nil, true, newImporter(), newBackend(), importer.BytesSource("ssid,password,security\n,x,WPA2\n"))
	if err != nil {
		t.Fatalf("runBatch() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Row 2: Skipping network with empty SSID") {
		t.Errorf("runBatch() output missing error. got=%q", buf.String())
	}
}

func TestRunQR(t *testing.T) {
	var buf bytes.Buffer

	err := runQR(&buf, "Cafe", newImporter(), importer.BytesSource(exampleCSV))
	if err != nil {
		t.Fatalf("runQR() failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "WIFI:S:Cafe;T:nopass;;") {
		t.Errorf("runQR() output missing URI. got=%q", output)
	}
	if strings.Contains(output, "WIFI:S:Home") {
		t.Errorf("runQR() should only show Cafe. got=%q", output)
	}

	err = runQR(io.Discard, "Nowhere", newImporter(), importer.BytesSource(exampleCSV))
	if !errors.Is(err, wifi.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRunQR_MissingFile(t *testing.T) {
	err := runQR(io.Discard, "", newImporter(), importer.FileSource("/nonexistent/networks.csv"))
	if !errors.Is(err, importer.ErrCritical) {
		t.Errorf("expected a critical error, got %v", err)
	}
}
