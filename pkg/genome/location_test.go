package genome

import "testing"

func TestParseCompactLocation(t *testing.T) {
	loc, err := ParseCompactLocation("c1_3+4,contig_2_20-7")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(loc) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(loc))
	}
	if loc[0] != (Segment{Contig: "c1", Begin: 3, Strand: StrandForward, Length: 4}) {
		t.Fatalf("unexpected first segment %+v", loc[0])
	}
	if loc[1] != (Segment{Contig: "contig_2", Begin: 20, Strand: StrandReverse, Length: 7}) {
		t.Fatalf("unexpected second segment %+v", loc[1])
	}
}

func TestParseCompactLocationMalformed(t *testing.T) {
	for _, in := range []string{"", "c1", "c1_3*4", "c1_3+", "c1_0+4", "c1_3+0", "c1_3+4,bogus"} {
		if _, err := ParseCompactLocation(in); err == nil {
			t.Fatalf("expected parse error for %q", in)
		}
	}
}

func TestParseSeedLocationStrands(t *testing.T) {
	loc, err := ParseSeedLocation("c1_3_6,c1_8_5,c1_5_5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Location{
		{Contig: "c1", Begin: 3, Strand: StrandForward, Length: 4},
		{Contig: "c1", Begin: 8, Strand: StrandReverse, Length: 4},
		{Contig: "c1", Begin: 5, Strand: StrandForward, Length: 1},
	}
	for i, seg := range want {
		if loc[i] != seg {
			t.Fatalf("segment %d: got %+v want %+v", i, loc[i], seg)
		}
	}
}

func TestSeedRoundTrip(t *testing.T) {
	for _, in := range []string{"c1_3_6", "c1_8_5", "c1_5_5", "ctg_a_1_100,ctg_b_50_11"} {
		loc, err := ParseSeedLocation(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if out := loc.SeedString(); out != in {
			t.Fatalf("round trip %q: got %q", in, out)
		}
	}
}

func TestCompactRoundTrip(t *testing.T) {
	for _, in := range []string{"c1_3+4", "c1_8-4", "ctg_a_1+100,ctg_b_50-40"} {
		loc, err := ParseCompactLocation(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if out := loc.CompactString(); out != in {
			t.Fatalf("round trip %q: got %q", in, out)
		}
	}
}

func TestSegmentEnd(t *testing.T) {
	fwd := Segment{Contig: "c1", Begin: 3, Strand: StrandForward, Length: 4}
	if fwd.End() != 6 {
		t.Fatalf("forward end: got %d want 6", fwd.End())
	}
	rev := Segment{Contig: "c1", Begin: 8, Strand: StrandReverse, Length: 4}
	if rev.End() != 5 {
		t.Fatalf("reverse end: got %d want 5", rev.End())
	}
}
