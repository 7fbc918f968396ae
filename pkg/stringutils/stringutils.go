package stringutils

import (
	"strings"
)

func LeftJust(text string, filler string, size int) string {
	repeatSize := size - len(text)
	if repeatSize <= 0 || filler == "" {
		return text
	}

	return text + strings.Repeat(filler, repeatSize)
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
