package search_test

import (
	"testing"

	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []lessons.Lesson {
	return []lessons.Lesson{
		{ID: 1, Words: []lessons.Word{
			{Greek: "γειά", Russian: "привет"},
			{Greek: "ναι", Russian: "да"},
		}},
		{ID: 2, Words: []lessons.Word{
			{Greek: "το νερό", Russian: "вода"},
			{Greek: "η ελιά", Russian: "оливка"},
		}},
		{ID: 3},
	}
}

func TestFilter_EmptyQueryMatchesEverything(t *testing.T) {
	ls := fixture()
	res := search.Filter("   ", ls)

	assert.Equal(t, 4, res.Matched)
	assert.Equal(t, []bool{true, true}, res.Sections[0].Matches)
	assert.True(t, res.Sections[1].Visible)
	assert.False(t, res.Sections[2].Visible, "a lesson without words has nothing to show")
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		matched  int
		sections []bool
	}{
		{name: "greek with accent-free query", query: "νερο", matched: 1, sections: []bool{false, true, false}},
		{name: "folded digraph", query: "νε", matched: 2, sections: []bool{true, true, false}},
		{name: "russian field", query: "ПРИВ", matched: 1, sections: []bool{true, false, false}},
		{name: "no match", query: "xyz", matched: 0, sections: []bool{false, false, false}},
		{name: "tonos in query", query: "γειά", matched: 1, sections: []bool{true, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := search.Filter(tt.query, fixture())
			assert.Equal(t, tt.matched, res.Matched)
			require.Len(t, res.Sections, 3)
			for i, want := range tt.sections {
				assert.Equal(t, want, res.Sections[i].Visible, "section %d", i)
			}
		})
	}
}

func TestFilter_HiddenWordsStayInPlace(t *testing.T) {
	ls := fixture()
	res := search.Filter("вода", ls)

	sec := res.Sections[1]
	assert.Equal(t, []bool{true, false}, sec.Matches)
	assert.Len(t, sec.Lesson.Words, 2)
}

func TestResult_Hits(t *testing.T) {
	ls := fixture()
	res := search.Filter("а", ls)

	hits := res.Hits()
	require.Len(t, hits, res.Matched)
	for _, h := range hits {
		assert.True(t, search.Match("а", *h.Word))
	}
	assert.Same(t, &ls[0].Words[1], hits[0].Word)
	assert.Equal(t, 2, res.VisibleSections())
}
