package renderer

import (
	"fmt"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"cell":   cell,
	"price":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"signed": func(v float64) string { return fmt.Sprintf("%+.2f%%", v) },
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// sample returns at most n items of s, evenly spread, always keeping the
// first and the last one.
func sample[T any](s []T, n int) []T {
	if n < 2 || len(s) <= n {
		return s
	}
	res := make([]T, 0, n)
	last := len(s) - 1
	for i := range n {
		res = append(res, s[i*last/(n-1)])
	}
	return res
}
