package goldenscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentConsumerNextPos(t *testing.T) {
	cmd := &Command{Args: []Argument{{Value: "a"}, {Key: "k", Value: "v"}, {Value: "b"}}}
	c := cmd.ConsumeArgs()

	first := c.NextPos()
	require.NotNil(t, first)
	assert.Equal(t, "a", first.Value)

	second := c.NextPos()
	require.NotNil(t, second)
	assert.Equal(t, "b", second.Value)

	assert.Nil(t, c.NextPos())
}

func TestArgumentConsumerRestPos(t *testing.T) {
	cmd := &Command{Args: []Argument{{Value: "a"}, {Key: "k", Value: "v"}, {Value: "b"}}}
	c := cmd.ConsumeArgs()
	rest := c.RestPos()
	assert.Equal(t, []Argument{{Value: "a"}, {Value: "b"}}, rest)
	assert.Empty(t, c.RestPos())
}

func TestArgumentConsumerLookup(t *testing.T) {
	cmd := &Command{Args: []Argument{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}}
	c := cmd.ConsumeArgs()
	arg := c.Lookup("b")
	require.NotNil(t, arg)
	assert.Equal(t, "2", arg.Value)
	assert.Nil(t, c.Lookup("b"))
	assert.Nil(t, c.Lookup("missing"))
}

func TestArgumentConsumerLookupParse(t *testing.T) {
	cmd := &Command{Args: []Argument{{Key: "n", Value: "42"}}}
	c := cmd.ConsumeArgs()
	v, ok, err := c.LookupParse("n")
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 42, v)

	_, ok, err = c.LookupParse("n")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgumentConsumerLookupParseInvalid(t *testing.T) {
	cmd := &Command{Args: []Argument{{Key: "n", Value: "nope"}}}
	c := cmd.ConsumeArgs()
	_, ok, err := c.LookupParse("n")
	assert.True(t, ok)
	require.Error(t, err)
}

func TestArgumentConsumerLookupBool(t *testing.T) {
	cmd := &Command{Args: []Argument{{Key: "b", Value: "true"}}}
	c := cmd.ConsumeArgs()
	v, ok, err := c.LookupBool("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v)
}

func TestArgumentConsumerRejectRest(t *testing.T) {
	cmd := &Command{Args: []Argument{{Value: "a"}, {Key: "k", Value: "v"}}}
	c := cmd.ConsumeArgs()
	require.Error(t, c.RejectRest())

	c.NextPos()
	c.Lookup("k")
	require.NoError(t, c.RejectRest())
}
