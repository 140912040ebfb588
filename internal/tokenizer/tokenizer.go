// Package tokenizer splits a raw shell line into positional arguments.
//
// Ordinary tokens follow POSIX shell quoting. A single brace-delimited
// ({...}) or bracket-delimited ([...]) literal is isolated and returned
// verbatim as the final token so structured payloads survive splitting.
package tokenizer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrParse is returned when the shell-style splitter rejects a line,
// for example on an unterminated quote.
var ErrParse = errors.New("tokenizer: parse failure")

var (
	braceSpan   = regexp.MustCompile(`\{(.*?)\}`)
	bracketSpan = regexp.MustCompile(`\[(.*?)\]`)
)

// Tokenize splits line into tokens. The first {...} span wins over any
// [...] span; only the text before the span is shell-split.
func Tokenize(line string) ([]string, error) {
	if loc := braceSpan.FindStringIndex(line); loc != nil {
		return withLiteral(line, loc)
	}
	if loc := bracketSpan.FindStringIndex(line); loc != nil {
		return withLiteral(line, loc)
	}
	return split(line)
}

func withLiteral(line string, loc []int) ([]string, error) {
	tokens, err := split(line[:loc[0]])
	if err != nil {
		return nil, err
	}
	return append(tokens, line[loc[0]:loc[1]]), nil
}

func split(s string) ([]string, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, strings.Trim(w, ","))
	}
	return tokens, nil
}
