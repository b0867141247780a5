package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	Name   string
	Course string
	Gender string
}

var recordDef = Definition[record]{
	SearchFields: []func(record) string{
		func(r record) string { return r.Name },
		func(r record) string { return r.Course },
	},
	Selectors: []Selector[record]{
		{Name: "course", Value: func(r record) string { return r.Course }, Fold: true},
		{Name: "gender", Value: func(r record) string { return r.Gender }, Fold: true},
	},
}

var records = []record{
	{Name: "John Wafula", Course: "Carpentry", Gender: "MALE"},
	{Name: "Mary Adhiambo", Course: "Tailoring", Gender: "FEMALE"},
	{Name: "Peter Johnstone", Course: "Masonry", Gender: "MALE"},
	{Name: "Agnes Nekesa", Course: "Tailoring", Gender: "FEMALE"},
	{Name: "Brian Ouma", Course: "Welding", Gender: "MALE"},
}

func TestApply_NoTermAndAllSelectorsReturnEverything(t *testing.T) {
	filters := Filters{"course": All, "gender": All}

	got := recordDef.Apply(records, "", filters)

	assert.Equal(t, records, got)
}

func TestApply_EmptyFiltersReturnEverything(t *testing.T) {
	got := recordDef.Apply(records, "   ", Filters{})

	assert.Equal(t, records, got)
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	got := recordDef.Apply(records, "john", Filters{})

	assert.Len(t, got, 2)
	assert.Equal(t, "John Wafula", got[0].Name)
	assert.Equal(t, "Peter Johnstone", got[1].Name)
}

func TestApply_SelectorFoldsCase(t *testing.T) {
	got := recordDef.Apply(records, "", Filters{"course": "tailoring"})

	assert.Len(t, got, 2)
	assert.Equal(t, "Mary Adhiambo", got[0].Name)
	assert.Equal(t, "Agnes Nekesa", got[1].Name)
}

func TestApply_TermAndSelectorsCombine(t *testing.T) {
	got := recordDef.Apply(records, "o", Filters{"gender": "MALE", "course": All})

	// Every male record contains an "o" somewhere
	assert.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, "MALE", r.Gender)
	}
}

func TestApply_PreservesInputOrder(t *testing.T) {
	got := recordDef.Apply(records, "", Filters{"gender": "male"})

	// The result must be a subsequence of the input: same relative order,
	// no duplicates, nothing invented
	assert.Equal(t, []record{records[0], records[2], records[4]}, got)
}

func TestApply_UnknownSelectorNameIsIgnored(t *testing.T) {
	got := recordDef.Apply(records, "", Filters{"county": "Busia"})

	assert.Equal(t, records, got)
}

func TestApply_NoMatchesReturnsEmptySlice(t *testing.T) {
	got := recordDef.Apply(records, "zz-no-such-learner", Filters{})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
