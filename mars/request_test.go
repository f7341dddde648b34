package mars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmp/marskit/mars"
)

func TestRequestSetValuesAndHas(t *testing.T) {
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))
	assert.True(t, req.Has("param"))
	assert.True(t, req.Has("PARAM"))
	assert.False(t, req.Has("levtype"))
}

func TestRequestSetValuesOverwritesInPlace(t *testing.T) {
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))
	require.NoError(t, req.SetValues("param", []string{"msl"}, nil))
	require.Len(t, req.Parameters(), 1)
	vals, err := req.Values("param", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"msl"}, vals)
}

func TestRequestUnset(t *testing.T) {
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))
	require.NoError(t, req.SetValues("levtype", []string{"sfc"}, nil))
	req.Unset("param")
	assert.False(t, req.Has("param"))
	assert.True(t, req.Has("levtype"))
	vals, err := req.Values("levtype", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"sfc"}, vals)
}

func TestRequestMerge(t *testing.T) {
	a := mars.NewRequest("retrieve")
	require.NoError(t, a.SetValues("param", []string{"2t"}, nil))
	b := mars.NewRequest("retrieve")
	require.NoError(t, b.SetValues("levtype", []string{"sfc"}, nil))
	require.NoError(t, b.SetValues("param", []string{"msl"}, nil))

	a.Merge(b)
	vals, _ := a.Values("param", false)
	assert.Equal(t, []string{"msl"}, vals)
	vals, _ = a.Values("levtype", false)
	assert.Equal(t, []string{"sfc"}, vals)
}

func TestRequestSubset(t *testing.T) {
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))
	require.NoError(t, req.SetValues("levtype", []string{"sfc"}, nil))
	require.NoError(t, req.SetValues("date", []string{"20260101"}, nil))

	sub := req.Subset("param", "date")
	assert.True(t, sub.Has("param"))
	assert.True(t, sub.Has("date"))
	assert.False(t, sub.Has("levtype"))
}

func TestRequestCountWithoutTypes(t *testing.T) {
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t", "msl"}, nil))
	require.NoError(t, req.SetValues("levtype", []string{"sfc"}, nil))
	assert.Equal(t, 2, req.Count())
}

func TestRequestIs(t *testing.T) {
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("levtype", []string{"SFC"}, nil))
	assert.True(t, req.Is("levtype", "sfc"))
	assert.False(t, req.Is("levtype", "pl"))
}

func TestRequestString(t *testing.T) {
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t", "msl"}, nil))
	assert.Equal(t, "retrieve,param=2t/msl", req.String())
}

func TestRequestLess(t *testing.T) {
	a := mars.NewRequest("retrieve")
	require.NoError(t, a.SetValues("param", []string{"2t"}, nil))
	b := mars.NewRequest("retrieve")
	require.NoError(t, b.SetValues("param", []string{"msl"}, nil))
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func TestRequestValuesMissingErrorsUnlessAllowed(t *testing.T) {
	req := mars.NewRequest("retrieve")
	_, err := req.Values("param", false)
	assert.Error(t, err)

	vals, err := req.Values("param", true)
	assert.NoError(t, err)
	assert.Nil(t, vals)
}
