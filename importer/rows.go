package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// headerRow is the row number of the discarded header line.
	headerRow = 1
	// columnCount is the number of fields a data row must have.
	columnCount = 3
)

const incorrectColumnsMessage = "Incorrect number of columns"

// RawRecord is one data row of the CSV, before validation.
type RawRecord struct {
	Row      int
	SSID     string
	Password string
	Security string
}

// RowReader reads RawRecords from a CSV stream. The first line is always
// treated as a header and discarded.
//
// Every line outside a quoted field gets a row number, blank lines included.
// Next returns a *RowError for blank rows and rows with the wrong number of
// columns; the caller may keep reading after one. io.EOF marks the end of the
// stream, and any other error (including malformed quoting) is a read failure
// after which the reader is done.
type RowReader struct {
	r     *csv.Reader
	lines *lineCounter
	err   error

	// row is the number of the last row handed out, header included.
	row int
	// line is the last physical line consumed by a record.
	line int
	// blanks is the number of blank lines to report before pending.
	blanks  int
	pending []string
}

// NewRowReader creates a RowReader on top of r.
func NewRowReader(r io.Reader) *RowReader {
	lc := &lineCounter{r: r}
	cr := csv.NewReader(lc)
	// Column count is checked per row so a bad row doesn't stop the pass.
	cr.FieldsPerRecord = -1
	return &RowReader{r: cr, lines: lc}
}

// Next returns the next data record.
func (rr *RowReader) Next() (RawRecord, error) {
	for {
		if rr.err != nil {
			return RawRecord{}, rr.err
		}

		if rr.blanks > 0 {
			rr.blanks--
			rr.row++
			if rr.row <= headerRow {
				continue
			}
			return RawRecord{}, &RowError{Row: rr.row, Kind: KindFormat, Message: incorrectColumnsMessage}
		}

		if rr.pending != nil {
			fields := rr.pending
			rr.pending = nil
			rr.row++
			if rr.row <= headerRow {
				continue
			}
			if len(fields) != columnCount {
				return RawRecord{}, &RowError{Row: rr.row, Kind: KindFormat, Message: incorrectColumnsMessage}
			}
			return RawRecord{
				Row:      rr.row,
				SSID:     fields[0],
				Password: fields[1],
				Security: fields[2],
			}, nil
		}

		if err := rr.read(); err != nil {
			return RawRecord{}, rr.fail(err)
		}
	}
}

// read loads the next record into pending, along with the count of blank
// lines csv.Reader skipped before it. At the end of the stream, trailing
// blank lines are queued before io.EOF is returned.
func (rr *RowReader) read() error {
	fields, err := rr.r.Read()
	if errors.Is(err, io.EOF) {
		if n := rr.lines.Lines() - rr.line; n > 0 {
			rr.blanks = n
			rr.line += n
			return nil
		}
		return io.EOF
	}
	if err != nil {
		return err
	}

	start, _ := rr.r.FieldPos(0)
	last := len(fields) - 1
	end, _ := rr.r.FieldPos(last)
	end += strings.Count(fields[last], "\n")

	rr.blanks = start - rr.line - 1
	rr.line = end
	rr.pending = fields
	return nil
}

// Row is the number of the last row returned by Next, or 0 before the header
// was read.
func (rr *RowReader) Row() int {
	return rr.row
}

func (rr *RowReader) fail(err error) error {
	if !errors.Is(err, io.EOF) {
		err = fmt.Errorf("failed to read csv: %w", err)
	}
	rr.err = err
	return err
}

// lineCounter counts the lines that pass through it.
type lineCounter struct {
	r        io.Reader
	newlines int
	last     byte
	n        int64
}

func (lc *lineCounter) Read(p []byte) (int, error) {
	n, err := lc.r.Read(p)
	if n > 0 {
		lc.newlines += bytes.Count(p[:n], []byte{'\n'})
		lc.last = p[n-1]
		lc.n += int64(n)
	}
	return n, err
}

// Lines is the number of lines read so far. A final line without a newline
// counts too.
func (lc *lineCounter) Lines() int {
	if lc.n > 0 && lc.last != '\n' {
		return lc.newlines + 1
	}
	return lc.newlines
}
