// Package normalize canonicalizes song titles and names for comparison purposes.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
)

var (
	// words that make a parenthetical worth keeping when looking up lyrics:
	// "Song (feat. B)" and "Song (Instrumental)" are not the same lyrics as "Song"
	LyricsKeptWords = []string{"feat", "instrumental"}

	featPattern = regexp.MustCompile(`(?i)\((\s*)(featuring|feat\.?|ft\.?|with)\s+`)
	spaces      = regexp.MustCompile(`\s+`)
)

// RemoveJunk strips the parenthetical tail of a title unless
// it contains any of the kept words:
// > RemoveJunk("Lose Yourself (From 8 Mile Soundtrack)", nil) == "Lose Yourself"
// > RemoveJunk("Song A (feat. Artist B)", []string{"feat"}) == "Song A (feat. Artist B)"
func RemoveJunk(title string, kept []string) string {
	title = strings.TrimSpace(strings.Split(title, "|")[0])
	open := strings.Index(title, "(")
	if open <= 0 || open >= len(title)-1 {
		return title
	}

	tail := strings.ToLower(title[open:])
	for _, word := range kept {
		if strings.Contains(tail, strings.ToLower(word)) {
			return title
		}
	}
	return strings.TrimSpace(title[:open])
}

// Format brings the several ways featuring artists are spelled
// into a single "Title (feat. Artist)" form
func Format(title string) string {
	title = strings.TrimSpace(title)
	if strings.Contains(title, "[") && !strings.Contains(title, "(") {
		title = strings.NewReplacer("[", "(", "]", ")").Replace(title)
	}

	if open := strings.Index(title, "("); open > 0 && title[open-1] != ' ' {
		title = title[:open] + " " + title[open:]
	}

	if !strings.Contains(title, "(") {
		lower := strings.ToLower(title)
		for _, marker := range []string{" featuring ", " feat. ", " feat ", " ft. "} {
			if index := strings.Index(lower, marker); index > 0 {
				title = title[:index] + " (" + strings.TrimSpace(title[index:]) + ")"
				break
			}
		}
	}

	title = featPattern.ReplaceAllString(title, "(feat. ")
	return spaces.ReplaceAllString(title, " ")
}

// Fold lowercases the string and drops any whitespace,
// so that "Twenty One Pilots" matches "twentyonepilots"
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// Comparable lowercases, transliterates accents to ASCII,
// drops punctuation and collapses spaces
func Comparable(s string) string {
	s = unidecode.Unidecode(strings.ToLower(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
