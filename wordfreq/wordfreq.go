// Package wordfreq counts recurring words across a corpus of translated
// headlines.
//
// A title is split on whitespace, each field is split again on any interior
// punctuation other than hyphens and apostrophes, leading and trailing
// hyphens and apostrophes are trimmed, and the result is lowercased. So
// "Crisis!" and "crisis." are both "crisis", "well-known" stays one word, and
// "EU/US" becomes "eu" and "us". Accented letters and digits are word
// characters.
package wordfreq

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Threshold is the count a word has to exceed to be reported.
const Threshold = 2

// Table maps a normalized word to the number of times it occurred.
type Table map[string]int

// Entry is one row of a Table.
type Entry struct {
	Word  string
	Count int
}

// Entries returns the table ordered by count, highest first, with ties broken
// alphabetically.
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for word, count := range t {
		entries = append(entries, Entry{Word: word, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Analyze counts every word across titles and keeps those seen more than
// Threshold times.
func Analyze(titles []string) Table {
	repeated := make(Table)
	for word, count := range Count(titles) {
		if count > Threshold {
			repeated[word] = count
		}
	}
	return repeated
}

// Count tallies every word across titles, including words inside the same
// title.
func Count(titles []string) Table {
	// a Caser keeps state, so it is not shared between calls
	lower := cases.Lower(language.Und)
	wordCounts := make(Table)
	for _, title := range titles {
		for _, word := range tokenize(title, lower) {
			wordCounts[word]++
		}
	}
	return wordCounts
}

// Tokenize returns the normalized words of a single title in order.
func Tokenize(title string) []string {
	return tokenize(title, cases.Lower(language.Und))
}

func tokenize(title string, lower cases.Caser) []string {
	var words []string
	for _, field := range strings.Fields(title) {
		for _, part := range strings.FieldsFunc(field, isSeparator) {
			word := lower.String(SanitizeWord(part))
			if IsValidWord(word) {
				words = append(words, word)
			}
		}
	}
	return words
}

// SanitizeWord trims joining punctuation from both ends of a word and
// normalizes typographic apostrophes.
func SanitizeWord(word string) string {
	word = strings.Map(func(r rune) rune {
		if r == '’' || r == '‘' {
			return '\''
		}
		return r
	}, word)
	return strings.TrimFunc(strings.TrimSpace(word), isJoiner)
}

// IsValidWord reports whether word holds at least one letter or digit.
func IsValidWord(word string) bool {
	return strings.IndexFunc(word, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}) >= 0
}

func isJoiner(r rune) bool {
	switch r {
	case '-', '\'', '’', '‘':
		return true
	}
	return false
}

func isSeparator(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) {
		return false
	}
	return !isJoiner(r)
}
