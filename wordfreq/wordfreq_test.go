package wordfreq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   Table
	}{
		{
			name:   "case insensitive",
			titles: []string{"Crisis", "crisis", "CRISIS"},
			want:   Table{"crisis": 3},
		},
		{
			name:   "exactly twice is excluded",
			titles: []string{"a b", "a c"},
			want:   Table{},
		},
		{
			name:   "three or more kept with exact count",
			titles: []string{"x y", "x z", "x w"},
			want:   Table{"x": 3},
		},
		{
			name:   "empty corpus",
			titles: nil,
			want:   Table{},
		},
		{
			name:   "repeats inside one title count",
			titles: []string{"war war war"},
			want:   Table{"war": 3},
		},
		{
			name:   "ties all reported",
			titles: []string{"the end of the road", "the road", "the road ahead"},
			want:   Table{"the": 4, "road": 3},
		},
		{
			name:   "punctuation stripped",
			titles: []string{"Crisis!", "crisis.", "¿Crisis?"},
			want:   Table{"crisis": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.titles))
		})
	}
}

func TestCountStripsPunctuation(t *testing.T) {
	got := Count([]string{"Crisis!", "crisis."})
	assert.Equal(t, Table{"crisis": 2}, got)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{"The well-known crisis", []string{"the", "well-known", "crisis"}},
		{"Spain’s budget", []string{"spain's", "budget"}},
		{"EU/US talks", []string{"eu", "us", "talks"}},
		{"Educación pública", []string{"educación", "pública"}},
		{"'Quoted' -- words -", []string{"quoted", "words"}},
		{"Elections 2024:", []string{"elections", "2024"}},
		{"   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.title))
		})
	}
}

func TestSanitizeWord(t *testing.T) {
	assert.Equal(t, "spain's", SanitizeWord("spain’s"))
	assert.Equal(t, "word", SanitizeWord("'word'"))
	assert.Equal(t, "", SanitizeWord("--"))
}

func TestIsValidWord(t *testing.T) {
	assert.True(t, IsValidWord("crisis"))
	assert.True(t, IsValidWord("2024"))
	assert.True(t, IsValidWord("ñu"))
	assert.False(t, IsValidWord(""))
	assert.False(t, IsValidWord("'-"))
}

func TestEntriesOrder(t *testing.T) {
	table := Table{"road": 3, "the": 4, "crisis": 3}
	assert.Equal(t, []Entry{
		{Word: "the", Count: 4},
		{Word: "crisis", Count: 3},
		{Word: "road", Count: 3},
	}, table.Entries())
	assert.Empty(t, Table{}.Entries())
}
