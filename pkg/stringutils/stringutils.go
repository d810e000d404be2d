package stringutils

import "strings"

// LeftJust pads text on the right with fill until it is at least n characters wide.
func LeftJust(text string, fill string, n int) string {
	if fill == "" || len(text) >= n {
		return text
	}

	return text + strings.Repeat(fill, (n-len(text))/len(fill))
}
