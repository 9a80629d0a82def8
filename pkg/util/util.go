package util

import (
	"math/rand"
	"strings"
)

const randCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandStringWithUpperLowerNum returns a random alphanumeric string.
func GenerateRandStringWithUpperLowerNum(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randCharset[rand.Intn(len(randCharset))]
	}
	return string(b)
}

// SanitizePathName strips characters that break ffmpeg arguments or archive
// member names.
func SanitizePathName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "",
		"\"", "",
		"<", "_",
		">", "_",
		"|", "_",
		"=", "",
		" ", "_",
	)
	return replacer.Replace(name)
}

// FileStem returns the file name without its extension.
func FileStem(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if dot := strings.LastIndex(base, "."); dot > 0 {
		return base[:dot]
	}
	return base
}
