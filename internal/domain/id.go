package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/shortuuid/v4"
)

// DefaultIDLength is the length of identifiers produced for summaries.
const DefaultIDLength = 12

// idAlphabet holds the 57 characters shortuuid requires. It leaves out 0, 1,
// I, O and S, so an unprefixed identifier never starts with S.
const idAlphabet = "23456789abcdefghijklmnopqrstuvwxyzABCDEFGHJKLMNPQRTUVWXYZ"

// GenerateID returns a random identifier of exactly length characters.
// An optional prefix of at most one character is placed first and counts
// towards the length.
func GenerateID(length int, prefix string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidIDLength, length)
	}

	n := utf8.RuneCountInString(prefix)
	if n > 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidIDPrefix, prefix)
	}

	want := length - n
	var b strings.Builder
	b.Grow(length)
	b.WriteString(prefix)

	// Each shortuuid holds 128 random bits; the leading characters carry
	// fewer of them, so take from the end.
	for want > 0 {
		chunk := shortuuid.NewWithAlphabet(idAlphabet)
		if len(chunk) > want {
			chunk = chunk[len(chunk)-want:]
		}
		b.WriteString(chunk)
		want -= len(chunk)
	}

	return b.String(), nil
}
