package services

import (
	"strings"
	"unicode/utf8"
)

// Excerpt returns at most maxRunes runes from the start of text. The cut is
// made after the last complete sentence that fits; when no sentence fits the
// text is cut on a word boundary instead.
func Excerpt(text string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultSummaryLength
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	var b strings.Builder
	for _, sentence := range splitIntoSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		extra := utf8.RuneCountInString(sentence)
		if b.Len() > 0 {
			extra++
		}
		if utf8.RuneCountInString(b.String())+extra > maxRunes {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}
	if b.Len() > 0 {
		return b.String()
	}

	cut := string([]rune(text)[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut
}

func splitIntoSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || runes[i+1] == ' ' {
				sentences = append(sentences, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}
