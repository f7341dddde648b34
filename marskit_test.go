package marskit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmp/marskit"
)

func TestParseRequestsFacade(t *testing.T) {
	reqs, err := marskit.ParseRequests(strings.NewReader(
		"retrieve,param=2t/msl,levtype=sfc,date=20260101\n"), true)
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	req := reqs[0]
	assert.Equal(t, "retrieve", req.Verb())

	param, err := req.Values("param", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2t", "msl"}, param)

	levtype, err := req.Values("levtype", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"sfc"}, levtype)
}

func TestParseRequestsMultiple(t *testing.T) {
	input := "retrieve,param=2t\nretrieve,param=msl\n"
	reqs, err := marskit.ParseRequests(strings.NewReader(input), true)
	require.NoError(t, err)
	assert.Len(t, reqs, 2)
}
