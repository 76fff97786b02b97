package match

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/joseph-ayodele/docanalyzer/internal/entity"
)

var reTrailingPunct = regexp.MustCompile(`[|,.\])(:;{}\s]+$`)

// normalizeLabel folds case and drops trailing punctuation OCR attaches to labels ("4.", "7:", "10|").
func normalizeLabel(s string) string {
	s = cases.Fold().String(norm.NFKC.String(s))
	s = reTrailingPunct.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.Join(strings.Fields(s), " ")
}

// layout is the token sequence in reading order with its line structure.
type layout struct {
	tokens    []entity.Token
	line      []int // line id per token, increasing in reading order
	norm      []string
	pageWidth map[int]int
}

type lineGroup struct {
	page    int
	members []int
	meanTop float64
	minX    int
}

// newLayout orders tokens by page, then lines top-to-bottom, then left-to-right.
// Tokens carrying OCR line numbers are grouped by (block, par, line); the rest
// are clustered by vertical centre.
func newLayout(tokens []entity.Token) *layout {
	type lineKey struct{ page, block, par, line int }

	var groups []*lineGroup
	byKey := make(map[lineKey]*lineGroup)
	var loose []int

	for i, t := range tokens {
		if t.Line <= 0 {
			loose = append(loose, i)
			continue
		}
		k := lineKey{t.PageIndex, t.Block, t.Par, t.Line}
		g, ok := byKey[k]
		if !ok {
			g = &lineGroup{page: t.PageIndex}
			byKey[k] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, i)
	}

	slices.SortStableFunc(loose, func(a, b int) int {
		ta, tb := tokens[a], tokens[b]
		if c := cmp.Compare(ta.PageIndex, tb.PageIndex); c != 0 {
			return c
		}
		_, ya := ta.Box().Center()
		_, yb := tb.Box().Center()
		return cmp.Compare(ya, yb)
	})
	var cur *lineGroup
	var curCY float64
	for _, i := range loose {
		t := tokens[i]
		_, cy := t.Box().Center()
		tol := math.Max(1, float64(t.Height)/2)
		if cur == nil || cur.page != t.PageIndex || math.Abs(cy-curCY) > tol {
			cur = &lineGroup{page: t.PageIndex}
			groups = append(groups, cur)
			curCY = cy
		}
		cur.members = append(cur.members, i)
		curCY += (cy - curCY) / float64(len(cur.members))
	}

	for _, g := range groups {
		sum := 0
		g.minX = math.MaxInt
		for _, i := range g.members {
			sum += tokens[i].Y
			g.minX = min(g.minX, tokens[i].X)
		}
		g.meanTop = float64(sum) / float64(len(g.members))
		slices.SortStableFunc(g.members, func(a, b int) int {
			return cmp.Compare(tokens[a].X, tokens[b].X)
		})
	}
	slices.SortStableFunc(groups, func(a, b *lineGroup) int {
		if c := cmp.Compare(a.page, b.page); c != 0 {
			return c
		}
		if c := cmp.Compare(a.meanTop, b.meanTop); c != 0 {
			return c
		}
		return cmp.Compare(a.minX, b.minX)
	})

	l := &layout{
		tokens:    make([]entity.Token, 0, len(tokens)),
		line:      make([]int, 0, len(tokens)),
		norm:      make([]string, 0, len(tokens)),
		pageWidth: make(map[int]int),
	}
	for id, g := range groups {
		for _, i := range g.members {
			t := tokens[i]
			l.tokens = append(l.tokens, t)
			l.line = append(l.line, id)
			l.norm = append(l.norm, normalizeLabel(t.Text))
			l.pageWidth[t.PageIndex] = max(l.pageWidth[t.PageIndex], t.X+t.Width)
		}
	}
	return l
}

// readingOrder returns a copy of tokens sorted page, line, then x.
func readingOrder(tokens []entity.Token) []entity.Token {
	return newLayout(tokens).tokens
}

// groupLines groups tokens into reading-order lines.
func groupLines(tokens []entity.Token) [][]entity.Token {
	l := newLayout(tokens)
	var out [][]entity.Token
	for i, t := range l.tokens {
		if i == 0 || l.line[i] != l.line[i-1] {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], t)
	}
	return out
}
