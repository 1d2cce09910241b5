package genome

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Location string grammars. The compact form carries the strand explicitly;
// the seed form is the legacy directory encoding where strand is implied by
// coordinate order. Contig ids may contain underscores, so both patterns bind
// the longest possible contig prefix.
var (
	compactSegmentRe = regexp.MustCompile(`^(.*)_(\d+)([+-])(\d+)$`)
	seedSegmentRe    = regexp.MustCompile(`^(.*)_(\d+)_(\d+)$`)
)

// ParseCompactLocation parses a comma-separated list of compact segment
// strings of the form contig_begin<strand>length, e.g. "c1_3+4,c1_20-7".
func ParseCompactLocation(s string) (Location, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("parse location: empty string")
	}
	parts := strings.Split(s, ",")
	loc := make(Location, 0, len(parts))
	for _, part := range parts {
		m := compactSegmentRe.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("parse location: malformed segment %q", part)
		}
		begin, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("parse location: segment %q begin: %w", part, err)
		}
		length, err := strconv.Atoi(m[4])
		if err != nil {
			return nil, fmt.Errorf("parse location: segment %q length: %w", part, err)
		}
		seg := Segment{Contig: m[1], Begin: begin, Strand: Strand(m[3]), Length: length}
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("parse location: %w", err)
		}
		loc = append(loc, seg)
	}
	return loc, nil
}

// ParseSeedLocation parses a comma-separated list of legacy seed segment
// strings of the form contig_begin_end. begin <= end reads forward,
// begin > end reads backward from the rightmost base.
func ParseSeedLocation(s string) (Location, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("parse seed location: empty string")
	}
	parts := strings.Split(s, ",")
	loc := make(Location, 0, len(parts))
	for _, part := range parts {
		m := seedSegmentRe.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("parse seed location: malformed segment %q", part)
		}
		begin, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("parse seed location: segment %q begin: %w", part, err)
		}
		end, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("parse seed location: segment %q end: %w", part, err)
		}
		seg := Segment{Contig: m[1], Begin: begin}
		if begin <= end {
			seg.Strand = StrandForward
			seg.Length = end - begin + 1
		} else {
			seg.Strand = StrandReverse
			seg.Length = begin - end + 1
		}
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("parse seed location: %w", err)
		}
		loc = append(loc, seg)
	}
	return loc, nil
}

// End returns the 1-based coordinate of the segment's last base in reading
// order: begin+length-1 on the forward strand, begin-length+1 on the reverse.
func (s Segment) End() int {
	if s.Strand == StrandReverse {
		return s.Begin - (s.Length - 1)
	}
	return s.Begin + (s.Length - 1)
}

// CompactString renders the segment as contig_begin<strand>length.
func (s Segment) CompactString() string {
	return fmt.Sprintf("%s_%d%s%d", s.Contig, s.Begin, s.Strand, s.Length)
}

// SeedString renders the segment in the legacy contig_begin_end form.
func (s Segment) SeedString() string {
	return fmt.Sprintf("%s_%d_%d", s.Contig, s.Begin, s.End())
}

// CompactString renders the location as a comma-joined list of compact segments.
func (l Location) CompactString() string {
	parts := make([]string, len(l))
	for i, seg := range l {
		parts[i] = seg.CompactString()
	}
	return strings.Join(parts, ",")
}

// SeedString renders the location as a comma-joined list of legacy segments.
func (l Location) SeedString() string {
	parts := make([]string, len(l))
	for i, seg := range l {
		parts[i] = seg.SeedString()
	}
	return strings.Join(parts, ",")
}

// Validate checks every segment of the location.
func (l Location) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("location: no segments")
	}
	for _, seg := range l {
		if err := seg.Validate(); err != nil {
			return err
		}
	}
	return nil
}
