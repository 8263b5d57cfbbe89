package main

import "strings"

// firstLine returns msg up to (not including) its first newline.
func firstLine(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
