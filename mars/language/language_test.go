package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/mars/types"
)

func testLanguage(t *testing.T, rules []language.ContextRule) *language.Language {
	t.Helper()
	lang, err := language.NewLanguage("retrieve", []language.KeywordDef{
		{Name: "class", Settings: types.Settings{Class: "enum", Values: []string{"od"}, DefaultVals: []string{"od"}}},
		{Name: "levtype", Settings: types.Settings{Class: "enum", Values: []string{"sfc", "pl"}, DefaultVals: []string{"sfc"}}},
		{Name: "levelist", Settings: types.Settings{Class: "integer"}},
		{Name: "param", Settings: types.Settings{Class: "enum", Values: []string{"2t", "msl"}, FlattenFlag: true}},
	}, nil, rules)
	require.NoError(t, err)
	return lang
}

func TestExpandAppliesDefaults(t *testing.T) {
	lang := testLanguage(t, nil)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))

	out, err := lang.Expand(req, true, false)
	require.NoError(t, err)
	assert.True(t, out.Has("class"))
	vals, _ := out.Values("class", false)
	assert.Equal(t, []string{"od"}, vals)
	vals, _ = out.Values("levtype", false)
	assert.Equal(t, []string{"sfc"}, vals)
}

func TestExpandDoesNotMutateOriginal(t *testing.T) {
	lang := testLanguage(t, nil)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))

	_, err := lang.Expand(req, true, false)
	require.NoError(t, err)
	assert.False(t, req.Has("class"))
}

func TestExpandRejectsUnknownKeywordStrict(t *testing.T) {
	lang := testLanguage(t, nil)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("bogus", []string{"x"}, nil))

	_, err := lang.Expand(req, false, true)
	assert.Error(t, err)
}
