package driver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/driver"
	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/mars/types"
)

func newTestDriver(t *testing.T) *driver.ExpansionDriver {
	t.Helper()
	lang, err := language.NewLanguage("retrieve", []language.KeywordDef{
		{Name: "class", Settings: types.Settings{Class: "enum", Values: []string{"od"}, DefaultVals: []string{"od"}}},
		{Name: "param", Settings: types.Settings{Class: "enum", Values: []string{"2t", "msl"}, FlattenFlag: true}},
	}, nil, nil)
	require.NoError(t, err)
	d := driver.New()
	d.Register(lang)
	return d
}

func TestExpansionDriverExpand(t *testing.T) {
	d := newTestDriver(t)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))

	out, err := d.Expand(context.Background(), []*mars.Request{req}, false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Has("class"))
}

func TestExpansionDriverUnknownVerb(t *testing.T) {
	d := newTestDriver(t)
	req := mars.NewRequest("archive")
	_, err := d.Expand(context.Background(), []*mars.Request{req}, false)
	assert.Error(t, err)
}

func TestExpansionDriverFlatten(t *testing.T) {
	d := newTestDriver(t)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t", "msl"}, nil))

	var count int
	err := d.Flatten(context.Background(), req, false, func(r *mars.Request) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestExpansionDriverExpandOne(t *testing.T) {
	d := newTestDriver(t)
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))

	var got *mars.Request
	err := d.ExpandOne(context.Background(), req, false, func(r *mars.Request) error {
		got = r
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Has("class"))
}

func TestExpansionDriverReset(t *testing.T) {
	d := newTestDriver(t)
	d.Reset() // should not panic and should not error on subsequent use
	req := mars.NewRequest("retrieve")
	require.NoError(t, req.SetValues("param", []string{"2t"}, nil))
	_, err := d.Expand(context.Background(), []*mars.Request{req}, false)
	require.NoError(t, err)
}
