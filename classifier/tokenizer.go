package classifier

import (
	"regexp"
	"strings"
)

// Tokenizer is the interface for a text tokenizer
type Tokenizer interface {
	Tokenize(text string) []string
}

var wordPattern = regexp.MustCompile(`[a-z]+`)

type alphaTokenizer struct{}

// AlphaTokenizer lowercases text and returns every maximal run of ASCII letters in order of
// appearance. Duplicates are kept. Anything else (digits, punctuation, apostrophes, hyphens)
// separates tokens and is dropped.
var AlphaTokenizer = alphaTokenizer{}

func (t alphaTokenizer) Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
