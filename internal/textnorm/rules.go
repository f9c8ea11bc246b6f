package textnorm

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reThink        = regexp.MustCompile(`(?s)<think>.*?</think>`)
	reLeadIn       = buildLeadInPattern(leadIns)
	reDigitGroup   = regexp.MustCompile(`(\d+)\.(\d{3})(\D|$)`)
	reCaseBoundary = regexp.MustCompile(`([` + lowerLetters + `])([` + upperLetters + `])`)
	reNKhoi        = regexp.MustCompile(`([nN])([kK]hởi)`)
	reSyllableRun  = regexp.MustCompile(`(` + strings.Join(syllableEndings, "|") + `)([` + lowerLetters + `]{2,})`)
	reFullDate     = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	reDayMonth     = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// buildLeadInPattern matches any lead-in at the start of the text,
// case-insensitively, with any whitespace between its words.
func buildLeadInPattern(phrases []string) *regexp.Regexp {
	alts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		words := strings.Fields(p)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, `\s+`))
	}
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(alts, "|") + `)`)
}

// ComposeNFC converts decomposed diacritics into precomposed characters so
// the letter classes below match.
func ComposeNFC(text string) string {
	return norm.NFC.String(text)
}

// StripThinking removes <think>...</think> reasoning blocks.
func StripThinking(text string) string {
	return reThink.ReplaceAllString(text, "")
}

// StripLeadIn removes reasoning blocks and boilerplate lead-in phrases, then
// any ':' and spaces left in front of the answer.
func StripLeadIn(text string) string {
	text = strings.TrimSpace(StripThinking(text))
	for {
		loc := reLeadIn.FindStringIndex(text)
		if loc == nil {
			return text
		}
		text = strings.TrimSpace(text[loc[1]:])
		text = strings.TrimSpace(strings.TrimLeft(text, ":"))
	}
}

var quotePairs = [][2]string{{`"`, `"`}, {"“", "”"}}

// StripEnclosingQuotes drops one pair of quotes wrapping the whole text.
func StripEnclosingQuotes(text string) string {
	for _, q := range quotePairs {
		if len(text) >= len(q[0])+len(q[1]) && strings.HasPrefix(text, q[0]) && strings.HasSuffix(text, q[1]) {
			return text[len(q[0]) : len(text)-len(q[1])]
		}
	}
	return text
}

// UngroupDigits turns dot-grouped numbers into plain digits: 1.234.567 -> 1234567.
func UngroupDigits(text string) string {
	for reDigitGroup.MatchString(text) {
		text = reDigitGroup.ReplaceAllString(text, "${1}${2}${3}")
	}
	return text
}

// SpaceAfterComma makes sure every comma is followed by whitespace, unless it ends the text.
func SpaceAfterComma(text string) string {
	if !strings.Contains(text, ",") {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text) + 8)
	for i, r := range runes {
		b.WriteRune(r)
		if r == ',' && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// SplitCaseBoundary inserts a space where a lowercase letter runs straight
// into an uppercase one: "Hà NộiTP" -> "Hà Nội TP".
func SplitCaseBoundary(text string) string {
	return reCaseBoundary.ReplaceAllString(text, "$1 $2")
}

// SplitNKhoi separates an "n" glued to a following "khởi".
func SplitNKhoi(text string) string {
	return reNKhoi.ReplaceAllString(text, "$1 $2")
}

// SplitSyllableRun inserts a space after a known syllable final that is
// glued to two or more lowercase letters. Each replacement removes one glued
// final, so the loop ends.
func SplitSyllableRun(text string) string {
	for reSyllableRun.MatchString(text) {
		text = reSyllableRun.ReplaceAllString(text, "$1 $2")
	}
	return text
}

// SpellDates rewrites D/M/YYYY and D/M as words. Days up to 10 read "mùng".
func SpellDates(text string) string {
	text = reFullDate.ReplaceAllStringFunc(text, func(m string) string {
		parts := reFullDate.FindStringSubmatch(m)
		return dayWord(parts[1]) + " " + parts[1] + " tháng " + parts[2] + " năm " + parts[3]
	})
	return reDayMonth.ReplaceAllStringFunc(text, func(m string) string {
		parts := reDayMonth.FindStringSubmatch(m)
		return dayWord(parts[1]) + " " + parts[1] + " tháng " + parts[2]
	})
}

func dayWord(day string) string {
	if d, err := strconv.Atoi(day); err == nil && d <= 10 {
		return "mùng"
	}
	return "ngày"
}

// CollapseWhitespace reduces whitespace runs to one space and trims the ends.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}

// CompleteSentence makes the text end on '.', '!' or '?'. A trailing fragment
// is dropped when the last terminator sits past 70% of the text (counted in
// characters); otherwise a period is appended.
func CompleteSentence(text string) string {
	if text == "" || isTerminator(rune(text[len(text)-1])) {
		return text
	}
	runes := []rune(text)
	last := -1
	for i := len(runes) - 1; i >= 0; i-- {
		if isTerminator(runes[i]) {
			last = i
			break
		}
	}
	if last >= 0 && float64(last) > float64(len(runes))*0.7 {
		return string(runes[:last+1])
	}
	return text + "."
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
