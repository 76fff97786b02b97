package match

import (
	"log/slog"
	"math"
	"strings"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

// Matcher locates amounts printed next to known field labels on OCR'd pages.
// It keeps no state between calls.
type Matcher struct {
	logger *slog.Logger
}

func NewMatcher(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger}
}

// Match runs a silent Matcher.
func Match(tokens []entity.Token, fields []entity.FieldDefinition) ([]entity.ExtractedField, error) {
	return (&Matcher{logger: slog.New(slog.DiscardHandler)}).Match(tokens, fields)
}

// Match returns exactly one ExtractedField per definition, in catalog order.
// A field whose label or amount is missing is NOT_FOUND; only an empty token
// sequence is an error.
func (m *Matcher) Match(tokens []entity.Token, fields []entity.FieldDefinition) ([]entity.ExtractedField, error) {
	if len(tokens) == 0 {
		return nil, common.NewInputError("no OCR tokens: page is blank or unreadable", nil)
	}

	l := newLayout(tokens)
	out := make([]entity.ExtractedField, 0, len(fields))
	for _, f := range fields {
		ef := entity.ExtractedField{FieldID: f.ID, Confidence: entity.ConfidenceNotFound}
		if amt, ok := l.find(f); ok {
			ef.Amount = &amt
			ef.Confidence = entity.ConfidenceMatched
			m.logger.Debug("tax.match.field", "field_id", f.ID, "amount", amt.String())
		} else {
			m.logger.Debug("tax.match.field", "field_id", f.ID, "confidence", ef.Confidence.String())
		}
		out = append(out, ef)
	}
	return out, nil
}

// span is a run of tokens [start, end) in reading order and their union box.
type span struct {
	start, end int
	box        entity.Box
}

type candidate struct {
	span
	amount entity.Amount
}

// find tries label occurrences in reading order and returns the amount of the
// first one that has a candidate.
func (l *layout) find(f entity.FieldDefinition) (entity.Amount, bool) {
	for _, lbl := range l.labels(f) {
		if c, ok := l.nearest(f, lbl); ok {
			return c.amount, true
		}
	}
	return 0, false
}

// labels returns every token run matching the id or an alias, in reading order.
func (l *layout) labels(f entity.FieldDefinition) []span {
	var words [][]string
	for _, s := range f.Labels() {
		if w := strings.Fields(normalizeLabel(s)); len(w) > 0 {
			words = append(words, w)
		}
	}

	var out []span
	for i := range l.tokens {
		for _, w := range words {
			end, ok := l.matchLabelAt(i, w)
			if !ok {
				continue
			}
			sp := l.spanOf(i, end)
			if f.LabelMaxXRatio > 0 && float64(sp.box.X0) > f.LabelMaxXRatio*float64(l.pageWidth[l.tokens[i].PageIndex]) {
				continue
			}
			out = append(out, sp)
			break
		}
	}
	return out
}

// matchLabelAt reports whether label words start at token i, either as one
// token ("Box 1") or as consecutive tokens on one line ("Box", "1").
func (l *layout) matchLabelAt(i int, words []string) (int, bool) {
	if l.norm[i] == strings.Join(words, " ") {
		return i + 1, true
	}
	if len(words) == 1 || l.norm[i] != words[0] {
		return 0, false
	}
	for j := 1; j < len(words); j++ {
		k := i + j
		if k >= len(l.tokens) || l.line[k] != l.line[i] || l.norm[k] != words[j] {
			return 0, false
		}
	}
	return i + len(words), true
}

func (l *layout) spanOf(start, end int) span {
	b := l.tokens[start].Box()
	for k := start + 1; k < end; k++ {
		b = b.Union(l.tokens[k].Box())
	}
	return span{start: start, end: end, box: b}
}

// nearest picks the candidate closest to the label (centre to centre) that lies
// in the field's search direction; ties go to reading order.
func (l *layout) nearest(f entity.FieldDefinition, lbl span) (candidate, bool) {
	page := l.tokens[lbl.start].PageIndex
	lx, ly := lbl.box.Center()

	var best candidate
	bestDist := math.Inf(1)
	found := false
	for _, c := range l.candidates(f, lbl, page) {
		if !inDirection(f, lbl.box, c.box) {
			continue
		}
		if f.MinXRatio > 0 && float64(c.box.X0) <= f.MinXRatio*float64(l.pageWidth[page]) {
			continue
		}
		cx, cy := c.box.Center()
		d := (cx-lx)*(cx-lx) + (cy-ly)*(cy-ly)
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// candidates lists amounts on the page outside the label. Adjacent numeric
// fragments on one line ("1,234" ".56") are joined first; when the joined text
// is not an amount the fragments are tried one by one.
func (l *layout) candidates(f entity.FieldDefinition, lbl span, page int) []candidate {
	var out []candidate
	var run []int

	flush := func() {
		if len(run) == 0 {
			return
		}
		var text strings.Builder
		for _, k := range run {
			text.WriteString(strings.TrimSpace(l.tokens[k].Text))
		}
		if amt, ok := ParseAmount(text.String(), f.Amount); ok {
			out = append(out, candidate{span: l.spanOf(run[0], run[len(run)-1]+1), amount: amt})
		} else if len(run) > 1 {
			for _, k := range run {
				if amt, ok := ParseAmount(l.tokens[k].Text, f.Amount); ok {
					out = append(out, candidate{span: l.spanOf(k, k+1), amount: amt})
				}
			}
		}
		run = run[:0]
	}

	for k, t := range l.tokens {
		if t.PageIndex != page || (k >= lbl.start && k < lbl.end) || !isNumericish(t.Text) {
			flush()
			continue
		}
		if len(run) > 0 && !l.adjacent(run[len(run)-1], k) {
			flush()
		}
		run = append(run, k)
	}
	flush()
	return out
}

// adjacent reports whether token b directly continues token a on the same line.
func (l *layout) adjacent(a, b int) bool {
	if l.line[a] != l.line[b] || b != a+1 {
		return false
	}
	ta, tb := l.tokens[a], l.tokens[b]
	gap := tb.X - (ta.X + ta.Width)
	return gap <= max(ta.Height, tb.Height)/2
}

// inDirection checks the candidate against the label along the search axis and
// across it. MaxSpanPx bounds the gap along the axis; when unset MaxOffsetPx does.
func inDirection(f entity.FieldDefinition, label, cand entity.Box) bool {
	maxSpan := f.MaxSpanPx
	if maxSpan <= 0 {
		maxSpan = f.MaxOffsetPx
	}
	lx, ly := label.Center()
	cx, cy := cand.Center()
	offset := float64(f.MaxOffsetPx)

	switch f.Direction {
	case entity.DirectionRight:
		gap := cand.X0 - label.X1
		return gap >= 0 && gap <= maxSpan && math.Abs(cy-ly) <= offset
	case entity.DirectionLeft:
		gap := label.X0 - cand.X1
		return gap >= 0 && gap <= maxSpan && math.Abs(cy-ly) <= offset
	case entity.DirectionBelow:
		gap := cand.Y0 - label.Y1
		return gap >= 0 && gap <= maxSpan && math.Abs(cx-lx) <= offset
	default:
		return false
	}
}
