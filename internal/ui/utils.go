package ui

import "unicode/utf8"

func truncate(s string, length int) string {
	if length <= 3 {
		return "..."
	}
	if utf8.RuneCountInString(s) > length {
		return string([]rune(s)[:length-3]) + "..."
	}
	return s
}
