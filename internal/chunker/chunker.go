// Package chunker splits long article text into sentence-aligned pieces for
// independent summarization.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxLen is the chunk size bound, in characters.
const DefaultMaxLen = 1500

// Split breaks text at sentence ends (". ", "! ", "? ") and greedily packs
// sentences into chunks that stay under maxLen, counting the joining space.
// A single sentence longer than maxLen becomes its own chunk. The result is
// never empty.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	for _, sentence := range Sentences(trimmed) {
		n := utf8.RuneCountInString(sentence)
		if size == 0 {
			current.WriteString(sentence)
			size = n
			continue
		}
		if size+1+n < maxLen {
			current.WriteByte(' ')
			current.WriteString(sentence)
			size += 1 + n
			continue
		}
		chunks = append(chunks, current.String())
		current.Reset()
		current.WriteString(sentence)
		size = n
	}
	if size > 0 {
		chunks = append(chunks, current.String())
	}

	if len(chunks) == 0 {
		return []string{trimmed}
	}
	return chunks
}

// Sentences splits text after every '.', '!' or '?' that is followed by
// whitespace. The whitespace run itself is dropped.
func Sentences(text string) []string {
	var (
		out   []string
		start int
	)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '.' || r == '!' || r == '?' {
			end := i + size
			j := end
			for j < len(text) {
				ws, wsSize := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(ws) {
					break
				}
				j += wsSize
			}
			if j > end {
				out = append(out, text[start:end])
				start = j
				i = j
				continue
			}
		}
		i += size
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}
