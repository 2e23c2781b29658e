// Package document models a manuscript as a sequence of attributed text runs.
package document

import "strings"

// Range identifies a span of characters in a document.
type Range struct {
	Loc int
	Len int
}

// End returns the first offset past the range.
func (r Range) End() int {
	return r.Loc + r.Len
}

// Intersects reports whether two ranges share at least one character.
func (r Range) Intersects(o Range) bool {
	return r.Loc < o.End() && o.Loc < r.End()
}

// Contains reports whether the offset falls inside the range.
func (r Range) Contains(off int) bool {
	return off >= r.Loc && off < r.End()
}

// Run is a maximal span of text sharing one set of formatting attributes.
// Style is a semantic name ("Chapter Title") distinct from the raw font size.
type Run struct {
	Text     string
	Style    string
	FontSize float64
	Bold     bool
}

// Document is an ordered sequence of runs. The zero value is an empty document.
type Document struct {
	runs []Run
}

// New creates a document from the given runs. Empty runs are dropped.
func New(runs ...Run) *Document {
	d := &Document{}
	for _, r := range runs {
		d.AppendRun(r)
	}
	return d
}

// FromString creates a document holding a single unstyled run.
func FromString(text string) *Document {
	return New(Run{Text: text})
}

// AppendRun adds a run at the end of the document.
func (d *Document) AppendRun(r Run) {
	if r.Text == "" {
		return
	}
	d.runs = append(d.runs, r)
}

// Length returns the total character count.
func (d *Document) Length() int {
	n := 0
	for _, r := range d.runs {
		n += len(r.Text)
	}
	return n
}

// String returns the plain-text projection of the document.
func (d *Document) String() string {
	var sb strings.Builder
	for _, r := range d.runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Substring returns the plain text covered by the range, clamped to the
// document bounds. An empty or inverted range yields "".
func (d *Document) Substring(r Range) string {
	s := d.String()
	lo, hi := r.Loc, r.End()
	if lo < 0 {
		lo = 0
	}
	if hi > len(s) {
		hi = len(s)
	}
	if lo >= hi {
		return ""
	}
	return s[lo:hi]
}

// EnumerateRuns calls fn for each run with its absolute range, in document
// order, until fn returns false.
func (d *Document) EnumerateRuns(fn func(run Run, r Range) bool) {
	off := 0
	for _, run := range d.runs {
		r := Range{Loc: off, Len: len(run.Text)}
		if !fn(run, r) {
			return
		}
		off = r.End()
	}
}

// Insert places the given runs at the offset. A run covering the offset is
// split in two; its attributes are preserved on both halves. Offsets outside
// the document are clamped.
func (d *Document) Insert(at int, runs ...Run) {
	if at < 0 {
		at = 0
	}
	if at > d.Length() {
		at = d.Length()
	}

	var inserted []Run
	for _, r := range runs {
		if r.Text != "" {
			inserted = append(inserted, r)
		}
	}
	if len(inserted) == 0 {
		return
	}

	var out []Run
	off := 0
	placed := false
	for _, run := range d.runs {
		end := off + len(run.Text)
		if !placed && at >= off && at <= end {
			head := at - off
			if head > 0 {
				left := run
				left.Text = run.Text[:head]
				out = append(out, left)
			}
			out = append(out, inserted...)
			if head < len(run.Text) {
				right := run
				right.Text = run.Text[head:]
				out = append(out, right)
			}
			placed = true
		} else {
			out = append(out, run)
		}
		off = end
	}
	if !placed {
		out = append(out, inserted...)
	}
	d.runs = out
}

// Delete removes the characters covered by the range, clamped to the document
// bounds. Runs emptied by the deletion are dropped; partially covered runs
// keep their attributes.
func (d *Document) Delete(r Range) {
	lo, hi := r.Loc, r.End()
	if lo < 0 {
		lo = 0
	}
	if hi > d.Length() {
		hi = d.Length()
	}
	if lo >= hi {
		return
	}

	var out []Run
	off := 0
	for _, run := range d.runs {
		end := off + len(run.Text)
		switch {
		case end <= lo || off >= hi:
			out = append(out, run)
		default:
			keep := run
			head := ""
			if lo > off {
				head = run.Text[:lo-off]
			}
			tail := ""
			if hi < end {
				tail = run.Text[hi-off:]
			}
			keep.Text = head + tail
			if keep.Text != "" {
				out = append(out, keep)
			}
		}
		off = end
	}
	d.runs = out
}

// RunCount returns the number of runs in the document.
func (d *Document) RunCount() int {
	return len(d.runs)
}
