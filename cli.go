package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/qrwifi"
	"github.com/shazow/wifimport/wifi"
)

func formatSuggestion(s wifi.Suggestion) string {
	return fmt.Sprintf("%s\t%s", s.SSID(), s.Security())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runCheck parses and validates src without touching the backend.
func runCheck(w io.Writer, jsonOut bool, im *importer.Importer, src importer.Source) error {
	suggestions, rowErrors := im.Collect(src)

	if jsonOut {
		if suggestions == nil {
			suggestions = []wifi.Suggestion{}
		}
		return writeJSON(w, struct {
			Suggestions []wifi.Suggestion `json:"suggestions"`
			Errors      []string          `json:"errors"`
		}{suggestions, importer.Messages(rowErrors)})
	}

	for _, s := range suggestions {
		fmt.Fprintln(w, formatSuggestion(s))
	}
	for _, e := range rowErrors {
		fmt.Fprintln(w, e.Error())
	}
	fmt.Fprintf(w, "%d valid networks, %d errors.\n", len(suggestions), len(rowErrors))
	return nil
}

// runImport registers every valid network from src in one call.
func runImport(w io.Writer, jsonOut, showErrors bool, im *importer.Importer, b wifi.Backend, src importer.Source) error {
	if !b.Capabilities().BulkRegistration {
		return fmt.Errorf("%s backend can't register networks: %w", b.Name(), wifi.ErrNotSupported)
	}

	result := im.ImportAndRegister(src, b)
	if jsonOut {
		return writeJSON(w, result)
	}

	fmt.Fprintf(w, "%d networks suggested, %d failed.\n", result.SuccessCount, result.FailureCount)
	if showErrors {
		for _, e := range result.Errors {
			fmt.Fprintln(w, e)
		}
	} else if len(result.Errors) > 0 {
		fmt.Fprintf(w, "Found %d errors. Run with --errors for details.\n", len(result.Errors))
	}
	return nil
}

// runBatch proposes the networks of src in batches, waiting for a line on
// in between batches unless yes is set.
func runBatch(w io.Writer, in io.Reader, yes bool, im *importer.Importer, b wifi.Backend, src importer.Source) error {
	if !b.Capabilities().Proposals {
		return fmt.Errorf("%s backend can't propose networks: %w", b.Name(), wifi.ErrNotSupported)
	}

	dispatcher := importer.NewDispatcher(im, b)
	input := bufio.NewReader(in)
	for {
		d := dispatcher.Dispatch(src)
		switch d.State {
		case importer.StateEmpty:
			if len(d.Errors) == 0 {
				fmt.Fprintln(w, d.Summary())
				return nil
			}
			fmt.Fprintf(w, "Found %d errors:\n", len(d.Errors))
			for _, e := range d.Errors {
				fmt.Fprintln(w, e.Error())
			}
			return nil
		case importer.StateExhausted:
			fmt.Fprintln(w, d.Summary())
			if n := len(d.Errors); n > 0 {
				fmt.Fprintf(w, "Skipped %d rows:\n", n)
				for _, e := range d.Errors {
					fmt.Fprintln(w, e.Error())
				}
			}
			return nil
		}

		fmt.Fprintln(w, d.Summary())
		for _, s := range d.Batch {
			fmt.Fprintf(w, "  %s\n", formatSuggestion(s))
		}
		if yes || d.Remaining == 0 {
			continue
		}
		fmt.Fprint(w, "Press Enter for the next batch...")
		if _, err := input.ReadString('\n'); err != nil {
			fmt.Fprintln(w)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// runQR prints a join code for every valid network in src, or only for ssid
// when it's set.
func runQR(w io.Writer, ssid string, im *importer.Importer, src importer.Source) error {
	suggestions, rowErrors := im.Collect(src)
	for _, e := range rowErrors {
		if errors.Is(e, importer.ErrCritical) {
			return e
		}
	}

	found := false
	for _, s := range suggestions {
		if ssid != "" && s.SSID() != ssid {
			continue
		}
		found = true
		code, err := qrwifi.Render(s)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", s.SSID(), err)
		}
		fmt.Fprintf(w, "%s\n%s\n%s\n", s.SSID(), qrwifi.URI(s), code)
	}
	if ssid != "" && !found {
		return fmt.Errorf("network %q: %w", ssid, wifi.ErrNotFound)
	}
	return nil
}
