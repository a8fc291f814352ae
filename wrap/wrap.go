// Package wrap breaks text into lines against a per-line width budget.
//
// Words are separated by single ASCII spaces and paragraphs by '\n'. A word
// wider than its line is hard-broken across lines, and when the line budget
// runs out the last kept line is terminated with an ellipsis marker.
package wrap

import (
	"math"
	"strings"
)

// DefaultEllipsis is appended to the last line when text is truncated.
const DefaultEllipsis = "..."

// Unbounded can be passed as a line cap when the caller sets no limit.
const Unbounded = math.MaxInt

// MeasureFunc returns the rendered width of s. It must be monotonic:
// appending characters never decreases the width.
type MeasureFunc func(s string) float64

// WidthFunc returns the width budget of the line at index i.
type WidthFunc func(i int) float64

// Uniform returns a budget of width for every line.
func Uniform(width float64) WidthFunc {
	return func(int) float64 { return width }
}

// Narrowed returns a budget of narrow for lines [0, n) and full afterwards.
func Narrowed(n int, narrow, full float64) WidthFunc {
	return func(i int) float64 {
		if i < n {
			return narrow
		}
		return full
	}
}

// Result is the output of Breaker.Break.
type Result struct {
	Lines    []string
	MaxWidth float64 // widest emitted line as reported by Measure
}

// Breaker holds the measurement capability used by the wrapping passes.
// The zero Ellipsis means DefaultEllipsis.
type Breaker struct {
	Measure  MeasureFunc
	Ellipsis string
}

func (b Breaker) ellipsis() string {
	if b.Ellipsis == "" {
		return DefaultEllipsis
	}
	return b.Ellipsis
}

// Break splits input into paragraphs on '\n' and wraps each of them against
// widthOf, sharing one budget of maxLines lines. Empty paragraphs yield no
// lines. Once the budget is used up, remaining paragraphs are dropped.
func (b Breaker) Break(input string, widthOf WidthFunc, maxLines int) Result {
	var res Result
	if input == "" || maxLines <= 0 {
		return res
	}
	for _, para := range strings.Split(input, "\n") {
		if para == "" {
			continue
		}
		emitted := len(res.Lines)
		if emitted >= maxLines {
			break
		}
		shifted := func(i int) float64 { return widthOf(emitted + i) }
		lines := b.WrapWords(Words(para), shifted, maxLines-emitted)
		for _, l := range lines {
			if w := b.Measure(l); w > res.MaxWidth {
				res.MaxWidth = w
			}
		}
		res.Lines = append(res.Lines, lines...)
	}
	return res
}

// Words tokenizes a paragraph on single space characters. Runs of spaces
// produce empty tokens, which are kept.
func Words(paragraph string) []string {
	return strings.Split(paragraph, " ")
}

// WrapWords greedily packs words into at most totalLines lines, where line i
// may be at most widthOf(i) wide. A fit test uses <=, so ties stay on the
// current line. Negative or NaN budgets count as 0.
func (b Breaker) WrapWords(words []string, widthOf WidthFunc, totalLines int) []string {
	var lines []string
	if totalLines <= 0 {
		return lines
	}
	widthOf = clamped(widthOf)
	dots := b.ellipsis()
	last := totalLines == 1
	line := ""

	for _, word := range words {
		limit := widthOf(len(lines))
		candidate := join(line, word)
		trial := candidate
		if last {
			trial += dots
		}

		if b.Measure(trial) <= limit {
			line = candidate
			continue
		}
		if last {
			line = b.truncate(line, limit, dots)
			break
		}
		if b.Measure(word) <= limit {
			lines = append(lines, line)
			last = len(lines) == totalLines-1
			line = word
			continue
		}

		var truncated bool
		lines, line, truncated = b.hardWrap(lines, line, word, widthOf, totalLines, dots)
		if truncated {
			break
		}
		last = len(lines) == totalLines-1
	}

	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// hardWrap splits a word that does not fit any line on its own. It fills the
// current line with the longest fitting prefix, then emits full fragments
// until the remainder fits. The remainder is returned as the new current
// line; truncated reports that it was cut on the last line and already
// carries the ellipsis.
func (b Breaker) hardWrap(lines []string, line, word string, widthOf WidthFunc, totalLines int, dots string) ([]string, string, bool) {
	runes := []rune(word)
	if len(runes) == 0 {
		// 空词（连续空格产生）没有可拆的字符，视为已放置。
		return lines, line, false
	}

	// A non-empty line may take nothing and be pushed as is; an empty one
	// always takes at least one rune so the loop below can make progress.
	minKeep := 1
	if line != "" {
		minKeep = 0
	}
	limit := widthOf(len(lines))
	j := b.longestPrefix(runes, minKeep, limit, func(p string) string { return join(line, p) })
	if j > 0 {
		line = join(line, string(runes[:j]))
	}
	lines = append(lines, line)
	last := len(lines) == totalLines-1
	rest := runes[j:]

	for len(rest) > 0 {
		suffix := ""
		if last {
			suffix = dots
		}
		limit = widthOf(len(lines))
		if b.Measure(string(rest)+suffix) <= limit {
			break
		}
		j = b.longestPrefix(rest, 1, limit, func(p string) string { return p + suffix })
		if last {
			return lines, string(rest[:j]) + dots, true
		}
		lines = append(lines, string(rest[:j]))
		last = len(lines) == totalLines-1
		rest = rest[j:]
	}
	return lines, string(rest), false
}

// longestPrefix returns the largest j in [minKeep, len(runes)] such that
// build(runes[:j]) fits limit. minKeep is returned when nothing longer fits,
// even if it overflows.
func (b Breaker) longestPrefix(runes []rune, minKeep int, limit float64, build func(string) string) int {
	lo, hi := minKeep, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.Measure(build(string(runes[:mid]))) <= limit {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// truncate 去掉 line 末尾的字符，直到追加省略号后不超过 limit。
// 连省略号本身都放不下时只返回省略号。
func (b Breaker) truncate(line string, limit float64, dots string) string {
	if b.Measure(line+dots) <= limit {
		return line + dots
	}
	runes := []rune(line)
	j := b.longestPrefix(runes, 0, limit, func(p string) string { return p + dots })
	return strings.TrimRight(string(runes[:j]), " ") + dots
}

// clamped 将 NaN 与负数预算视为 0；+Inf 表示不限宽度，原样保留。
func clamped(widthOf WidthFunc) WidthFunc {
	return func(i int) float64 {
		w := widthOf(i)
		if math.IsNaN(w) || w < 0 {
			return 0
		}
		return w
	}
}

func join(line, word string) string {
	if line == "" {
		return word
	}
	return line + " " + word
}
