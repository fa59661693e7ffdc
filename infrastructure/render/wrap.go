package render

import "strings"

// MeasureFunc reports the rendered width of a string.
type MeasureFunc func(string) float64

// WrapLines turns body text into display lines: the text splits on explicit
// newlines into paragraphs, and within each paragraph words accumulate
// greedily while the measured line width stays within maxWidth. A word wider
// than maxWidth ends up alone on its own line; that is the only case where a
// line may exceed the limit. Wrapping the joined output again with the same
// width reproduces the same lines.
func WrapLines(measure MeasureFunc, text string, maxWidth float64) []string {
	var lines []string
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		line := ""
		for _, word := range words {
			test := word
			if line != "" {
				test = line + " " + word
			}
			if line != "" && measure(test) > maxWidth {
				lines = append(lines, line)
				line = word
			} else {
				line = test
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
