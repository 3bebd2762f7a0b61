package extract

import "golang.org/x/text/width"

// foldWidth normalizes full-width characters to their narrow forms so
// numeric patterns match text like "３日間" or "２人".
func foldWidth(s string) string {
	return width.Fold.String(s)
}
