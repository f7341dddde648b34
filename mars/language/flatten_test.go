package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/mars/types"
)

func flattenTestLanguage(t *testing.T) *language.Language {
	t.Helper()
	lang, err := language.NewLanguage("retrieve", []language.KeywordDef{
		{Name: "param", Settings: types.Settings{Class: "enum", Values: []string{"2t", "msl"}, FlattenFlag: true}},
		{Name: "levelist", Settings: types.Settings{Class: "integer"}},
	}, nil, nil)
	require.NoError(t, err)
	return lang
}

func TestFlattenSingleKeyword(t *testing.T) {
	lang := flattenTestLanguage(t)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t", "msl"}, nil))

	var got []string
	err := lang.Flatten(req, func(r *mars.Request) error {
		vals, _ := r.Values("param", false)
		got = append(got, vals[0])
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2t", "msl"}, got)
}

func TestFlattenMatchesRequestCount(t *testing.T) {
	lang := flattenTestLanguage(t)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t", "msl"}, nil))

	count := 0
	err := lang.Flatten(req, func(r *mars.Request) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, req.Count(), count)
}

func TestFlattenNonFlattenKeywordStaysWhole(t *testing.T) {
	lang := flattenTestLanguage(t)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))
	require.NoError(t, req.SetValues("levelist", []string{"500", "850"}, nil))

	var got []*mars.Request
	err := lang.Flatten(req, func(r *mars.Request) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	vals, _ := got[0].Values("levelist", false)
	assert.Equal(t, []string{"500", "850"}, vals)
}

func TestFlattenStopsOnCallbackError(t *testing.T) {
	lang := flattenTestLanguage(t)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t", "msl"}, nil))

	callCount := 0
	err := lang.Flatten(req, func(r *mars.Request) error {
		callCount++
		return assertErr
	})
	assert.ErrorIs(t, err, assertErr)
	assert.Equal(t, 1, callCount)
}

var assertErr = &flattenSentinel{}

type flattenSentinel struct{}

func (*flattenSentinel) Error() string { return "stop" }
