// Package layout computes the text placement for a post image: the
// largest title font size that fits the content width in at most a few
// lines, greedy word wrapping, the highlight box around a phrase inside
// a wrapped line, and the vertical position of the title and summary
// blocks on the canvas.
//
// All functions are pure; text measurement goes through the Typeface
// interface so the algorithms can be tested without a font backend.
package layout

import "strings"

// Typeface measures text at an arbitrary pixel size. fonts.Family is
// the production implementation.
type Typeface interface {
	Measure(text string, size int) (width, height int)
}

// Line is one wrapped line of text with its measured pixel box. Lines
// are only valid for the font size they were produced with.
type Line struct {
	Text   string
	Width  int
	Height int
}

// Block is a stack of lines sharing one font size.
type Block struct {
	Lines       []Line
	Size        int
	TotalHeight int
}

// CanvasSpec is the drawable area: full canvas dimensions and the
// uniform margin on all four sides.
type CanvasSpec struct {
	Width  int
	Height int
	Margin int
}

// ContentWidth is the horizontal budget for wrapped text.
func (c CanvasSpec) ContentWidth() int {
	return c.Width - 2*c.Margin
}

// FitOptions controls the title font size search.
type FitOptions struct {
	BaseSize  int // starting (largest) size
	MinSize   int // hard lower bound
	WidthStep int // decrement while the unwrapped text overflows
	CountStep int // coarser decrement while too many lines wrap
	MaxLines  int // line count ceiling for the title
}

// ComposeOptions controls vertical placement.
type ComposeOptions struct {
	TitleLineGap   int
	SummaryLineGap int
	BlockGap       int
	// Content shorter than FillThreshold of the available height is
	// pushed down by TopBias of it, so short posts do not hug the top
	// edge. Tuned for a 4:5 canvas.
	FillThreshold float64
	TopBias       float64
}

// HighlightBox is the padded rectangle drawn behind the highlighted
// phrase of one title line.
type HighlightBox struct {
	LineIndex      int
	X0, Y0, X1, Y1 int
}

// Wrap greedily packs the words of text into lines no wider than
// maxWidth at the given size. A single word wider than maxWidth is
// emitted as its own overflowing line rather than truncated. Empty
// input yields no lines.
func Wrap(tf Typeface, size int, text string, maxWidth int) []Line {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []Line
	current := words[0]
	for _, word := range words[1:] {
		test := current + " " + word
		if w, _ := tf.Measure(test, size); w <= maxWidth {
			current = test
			continue
		}
		lines = append(lines, measureLine(tf, size, current))
		current = word
	}
	return append(lines, measureLine(tf, size, current))
}

func measureLine(tf Typeface, size int, text string) Line {
	w, h := tf.Measure(text, size)
	return Line{Text: text, Width: w, Height: h}
}

// FitWidth returns the largest size no greater than start at which text
// measures within maxWidth, stepping down by step and never going below
// min. When even min overflows, min is returned and the overflow is
// tolerated.
func FitWidth(tf Typeface, text string, maxWidth, start, min, step int) int {
	for size := start; size >= min; size -= step {
		if w, _ := tf.Measure(text, size); w <= maxWidth {
			return size
		}
	}
	return min
}

// FitTitle picks the title font size in two phases: first the width
// fit, then a coarser shrink that re-wraps after every decrement until
// the wrap stays within o.MaxLines. The second phase is needed because
// a width-fitting size can still wrap into too many lines.
func FitTitle(tf Typeface, text string, maxWidth int, o FitOptions) (int, []Line) {
	size := FitWidth(tf, text, maxWidth, o.BaseSize, o.MinSize, o.WidthStep)
	lines := Wrap(tf, size, text, maxWidth)
	for len(lines) > o.MaxLines && size > o.MinSize {
		size -= o.CountStep
		if size < o.MinSize {
			size = o.MinSize
		}
		lines = Wrap(tf, size, text, maxWidth)
	}
	return size, lines
}

// NewBlock stacks lines with lineGap between them.
func NewBlock(lines []Line, size, lineGap int) Block {
	total := 0
	for _, ln := range lines {
		total += ln.Height
	}
	if n := len(lines); n > 1 {
		total += (n - 1) * lineGap
	}
	return Block{Lines: lines, Size: size, TotalHeight: total}
}

// Placement holds the computed top Y of every line of both blocks.
type Placement struct {
	TopY      int
	TitleYs   []int
	SummaryYs []int
}

// Compose decides where the title and summary blocks sit vertically.
// Content well short of the available height is moved down into the
// upper third; otherwise it starts just under the top margin. This is a
// fixed bias, not true centering.
func Compose(title, summary Block, canvas CanvasSpec, o ComposeOptions) Placement {
	total := title.TotalHeight + o.BlockGap + summary.TotalHeight
	available := canvas.Height - 2*canvas.Margin

	topY := canvas.Margin + 40
	if float64(total) < o.FillThreshold*float64(available) {
		topY = canvas.Margin + int(o.TopBias*float64(available))
	}

	p := Placement{TopY: topY}
	y := topY
	for _, ln := range title.Lines {
		p.TitleYs = append(p.TitleYs, y)
		y += ln.Height + o.TitleLineGap
	}
	y += o.BlockGap
	for _, ln := range summary.Lines {
		p.SummaryYs = append(p.SummaryYs, y)
		y += ln.Height + o.SummaryLineGap
	}
	return p
}

// LocateHighlight finds the first title line containing phrase as an
// exact substring and returns the padded box around it. The lookup is
// case sensitive and never merges across lines: a phrase split by the
// wrap simply stays unhighlighted and ok is false. Only the first
// occurrence on the first matching line is boxed.
func LocateHighlight(tf Typeface, size int, lines []Line, lineYs []int, phrase string, canvas CanvasSpec, padX, padY int) (HighlightBox, bool) {
	if phrase == "" {
		return HighlightBox{}, false
	}

	for i, ln := range lines {
		idx := strings.Index(ln.Text, phrase)
		if idx < 0 {
			continue
		}

		before := ln.Text[:idx]
		wBefore, _ := tf.Measure(before, size)
		wMatch, hMatch := tf.Measure(phrase, size)

		x0 := canvas.Margin + wBefore - padX
		x1 := canvas.Margin + wBefore + wMatch + padX
		if x0 < canvas.Margin {
			x0 = canvas.Margin
		}
		if max := canvas.Width - canvas.Margin; x1 > max {
			x1 = max
		}

		return HighlightBox{
			LineIndex: i,
			X0:        x0,
			Y0:        lineYs[i] - padY,
			X1:        x1,
			Y1:        lineYs[i] + hMatch + padY,
		}, true
	}
	return HighlightBox{}, false
}
