package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator computes checksums of generated schema text.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string
}

// Sums holds both checksums of one artifact.
type Sums struct {
	Raw        string `yaml:"raw" json:"raw"`
	Normalized string `yaml:"normalized" json:"normalized"`
}

// SHA256 implements Calculator using SHA-256. Normalization:
//  1. Remove SQL comments (-- and /* */) outside single-quoted literals
//  2. Lowercase everything outside single-quoted literals
//  3. Collapse whitespace runs to one space and trim
//
// SHA256 is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Sum computes both checksums of content.
func (c SHA256) Sum(content []byte) Sums {
	return Sums{Raw: c.CalculateRaw(content), Normalized: c.CalculateNormalized(content)}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

type scanState int

const (
	stNormal scanState = iota
	stLineComment
	stBlockComment
	stLiteral
)

// Normalize returns the canonical form used by CalculateNormalized.
func Normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := stNormal
	pendingSpace := false
	runes := []rune(content)

	emit := func(r rune) {
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch state {
		case stNormal:
			switch {
			case r == '-' && next == '-':
				state = stLineComment
				pendingSpace = true
				i++
			case r == '/' && next == '*':
				state = stBlockComment
				pendingSpace = true
				i++
			case r == '\'':
				state = stLiteral
				emit(r)
			case unicode.IsSpace(r):
				pendingSpace = true
			default:
				emit(unicode.ToLower(r))
			}

		case stLineComment:
			if r == '\n' {
				state = stNormal
			}

		case stBlockComment:
			if r == '*' && next == '/' {
				state = stNormal
				i++
			}

		case stLiteral:
			b.WriteRune(r)
			if r == '\'' {
				if next == '\'' {
					b.WriteRune(next)
					i++
				} else {
					state = stNormal
				}
			}
		}
	}

	return b.String()
}
