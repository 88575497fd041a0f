package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

type censorship struct {
	plain    string
	censored []string
}

// first censored form is the one Censor produces
var censorships = []censorship{
	{"fuck", []string{"f*ck", "f**k", "f***", "fu*k", "f*@k"}},
	{"shit", []string{"sh*t", "s**t", "sh!t", "s***"}},
	{"bitch", []string{"b*tch", "b**ch", "b***h", "bi*ch"}},
	{"damn", []string{"d*mn", "d**n", "da*n"}},
	{"ass", []string{"a**", "a*s"}},
	{"dick", []string{"d*ck", "d**k"}},
	{"pussy", []string{"p*ssy", "p***y"}},
}

// Uncensor replaces known censored spellings with the plain word
func Uncensor(text string) string {
	for _, entry := range censorships {
		for _, censored := range entry.censored {
			text = swap(text, regexp.QuoteMeta(censored), entry.plain)
		}
	}
	return text
}

// Censor replaces known plain words with their censored spelling
func Censor(text string) string {
	for _, entry := range censorships {
		text = swap(text, `\b`+entry.plain+`\b`, entry.censored[0])
	}
	return text
}

// swap replaces every case-insensitive match of expr,
// keeping the capitalization of the first letter
func swap(text, expr, replacement string) string {
	return regexp.MustCompile(`(?i)`+expr).ReplaceAllStringFunc(text, func(match string) string {
		if unicode.IsUpper(rune(match[0])) {
			return strings.ToUpper(replacement[:1]) + replacement[1:]
		}
		return replacement
	})
}
