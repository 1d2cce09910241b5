package seqio

import (
	"io"
	"strings"
	"testing"
)

func TestReadAll(t *testing.T) {
	in := ">c1 first contig\nACGTACGT\nACGT\n\n>c2\nTTTT\n"
	recs, err := ReadAll(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "c1" || recs[0].Description != "first contig" || recs[0].Seq != "ACGTACGTACGT" {
		t.Fatalf("unexpected first record %+v", recs[0])
	}
	if recs[1].ID != "c2" || recs[1].Description != "" || recs[1].Seq != "TTTT" {
		t.Fatalf("unexpected second record %+v", recs[1])
	}
}

func TestReadEmptyInput(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestReadRejectsHeaderlessSequence(t *testing.T) {
	if _, err := ReadAll(strings.NewReader("ACGT\n>c1\nAC\n")); err == nil {
		t.Fatalf("expected error for sequence before header")
	}
}

func TestReaderStreams(t *testing.T) {
	r := NewReader(strings.NewReader(">a\nAC\n>b\nGT\n"))
	first, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if first.ID != "a" || first.Seq != "AC" {
		t.Fatalf("unexpected record %+v", first)
	}
	second, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if second.ID != "b" || second.Seq != "GT" {
		t.Fatalf("unexpected record %+v", second)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestWriteWraps(t *testing.T) {
	var sb strings.Builder
	seq := strings.Repeat("ACGT", 40) // 160 bases, wraps at 60
	if err := Write(&sb, Record{ID: "c1", Description: "desc", Seq: seq}); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if lines[0] != ">c1 desc" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("expected 3 sequence lines, got %d", len(lines)-1)
	}
	if len(lines[1]) != 60 || len(lines[3]) != 40 {
		t.Fatalf("unexpected wrapping %v", []int{len(lines[1]), len(lines[2]), len(lines[3])})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	recs := []Record{
		{ID: "c1", Description: "a contig", Seq: strings.Repeat("ACGTTGCA", 20)},
		{ID: "c2", Seq: "A"},
	}
	var sb strings.Builder
	if err := WriteAll(&sb, recs); err != nil {
		t.Fatalf("write all: %v", err)
	}
	back, err := ReadAll(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(back) != len(recs) {
		t.Fatalf("expected %d records, got %d", len(recs), len(back))
	}
	for i := range recs {
		if back[i] != recs[i] {
			t.Fatalf("record %d mismatch: %+v vs %+v", i, back[i], recs[i])
		}
	}
}
