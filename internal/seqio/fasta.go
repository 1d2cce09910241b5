// Package seqio reads and writes FASTA-like sequence records. The rest of the
// system treats it as opaque record I/O: (id, optional description, sequence)
// triples in, the same triples out.
package seqio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is a single FASTA record.
type Record struct {
	ID          string
	Description string
	Seq         string
}

// Line width used when writing sequence data.
const wrapWidth = 60

// Reader streams records from FASTA input.
type Reader struct {
	scanner *bufio.Scanner
	pending string // header line read ahead of the current record
}

// NewReader wraps r for record-at-a-time reading.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &Reader{scanner: sc}
}

// Read returns the next record, or io.EOF when the input is exhausted.
// Sequence lines are concatenated with surrounding whitespace trimmed.
func (r *Reader) Read() (Record, error) {
	header := r.pending
	r.pending = ""
	for header == "" {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return Record{}, err
			}
			return Record{}, io.EOF
		}
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ">") {
			return Record{}, fmt.Errorf("fasta: sequence data before first header: %q", line)
		}
		header = line
	}

	rec := parseHeader(header)
	var seq strings.Builder
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			r.pending = line
			break
		}
		seq.WriteString(line)
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}
	rec.Seq = seq.String()
	return rec, nil
}

// ReadAll consumes the input and returns every record.
func ReadAll(r io.Reader) ([]Record, error) {
	fr := NewReader(r)
	var out []Record
	for {
		rec, err := fr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func parseHeader(line string) Record {
	body := strings.TrimPrefix(line, ">")
	id, desc, found := strings.Cut(body, " ")
	if !found {
		return Record{ID: body}
	}
	return Record{ID: id, Description: strings.TrimSpace(desc)}
}

// Write renders one record to w, wrapping the sequence at a fixed width.
func Write(w io.Writer, rec Record) error {
	header := ">" + rec.ID
	if rec.Description != "" {
		header += " " + rec.Description
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("fasta write %s: %w", rec.ID, err)
	}
	seq := rec.Seq
	for len(seq) > 0 {
		n := wrapWidth
		if n > len(seq) {
			n = len(seq)
		}
		if _, err := fmt.Fprintln(w, seq[:n]); err != nil {
			return fmt.Errorf("fasta write %s: %w", rec.ID, err)
		}
		seq = seq[n:]
	}
	return nil
}

// WriteAll renders records in order.
func WriteAll(w io.Writer, recs []Record) error {
	for _, rec := range recs {
		if err := Write(w, rec); err != nil {
			return err
		}
	}
	return nil
}
