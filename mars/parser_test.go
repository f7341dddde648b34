package mars_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmp/marskit/mars"
)

func TestParseRequestsBasic(t *testing.T) {
	reqs, err := mars.ParseRequests(strings.NewReader(
		"retrieve,param=2t/msl,levtype=sfc,date=20260101"), true)
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	req := reqs[0]
	assert.Equal(t, "retrieve", req.Verb())
	vals, err := req.Values("param", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2t", "msl"}, vals)
}

func TestParseRequestsMultiple(t *testing.T) {
	reqs, err := mars.ParseRequests(strings.NewReader(
		"retrieve,param=2t\nretrieve,param=msl"), true)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
}

func TestParseRequestsComments(t *testing.T) {
	reqs, err := mars.ParseRequests(strings.NewReader(
		"# a comment\nretrieve,param=2t # trailing comment\n"), true)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	vals, _ := reqs[0].Values("param", false)
	assert.Equal(t, []string{"2t"}, vals)
}

func TestParseRequestsQuotedValue(t *testing.T) {
	reqs, err := mars.ParseRequests(strings.NewReader(
		`retrieve,target="my file.grib"`), true)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	vals, _ := reqs[0].Values("target", false)
	assert.Equal(t, []string{"my file.grib"}, vals)
}

func TestParseRequestsStrictFailsOnBadSyntax(t *testing.T) {
	_, err := mars.ParseRequests(strings.NewReader("retrieve,param=2t,"), true)
	assert.Error(t, err)
}

func TestParseRequestsNonStrictSkipsBadRequest(t *testing.T) {
	reqs, err := mars.ParseRequests(strings.NewReader(
		"retrieve,param=2t,\nretrieve,param=msl"), false)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	vals, _ := reqs[0].Values("param", false)
	assert.Equal(t, []string{"msl"}, vals)
}

func TestParseRequestEmptyInput(t *testing.T) {
	reqs, err := mars.ParseRequests(strings.NewReader(""), true)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}
