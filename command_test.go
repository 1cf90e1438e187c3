package goldenscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandStringRendersSource(t *testing.T) {
	cases := []struct {
		name string
		cmd  *Command
		want string
	}{
		{
			name: "bare",
			cmd:  &Command{Name: "echo"},
			want: "echo",
		},
		{
			name: "args",
			cmd: &Command{
				Name: "set",
				Args: []Argument{{Value: "pos"}, {Key: "key", Value: "value"}},
			},
			want: `set pos key=value`,
		},
		{
			name: "prefix and fail and silent",
			cmd: &Command{
				Name:      "boom",
				Prefix:    "p",
				PrefixSet: true,
				Fail:      true,
				Silent:    true,
			},
			want: `(! p: boom)`,
		},
		{
			name: "empty name with prefix",
			cmd:  &Command{Prefix: "p", PrefixSet: true},
			want: `p: ""`,
		},
		{
			name: "tags sorted",
			cmd: &Command{
				Name: "go",
				Tags: Tags{"b": struct{}{}, "a": struct{}{}},
			},
			want: `[a, b] go`,
		},
		{
			name: "value needing quotes",
			cmd: &Command{
				Name: "echo",
				Args: []Argument{{Value: "has space"}},
			},
			want: `echo "has space"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cmd.String())
		})
	}
}

func TestCommandInternal(t *testing.T) {
	assert.True(t, (&Command{Name: "_set"}).Internal())
	assert.False(t, (&Command{Name: "set"}).Internal())
}

func TestTagsHas(t *testing.T) {
	tags := Tags{"a": struct{}{}}
	assert.True(t, tags.Has("a"))
	assert.False(t, tags.Has("b"))
}

func TestArgumentHasKey(t *testing.T) {
	assert.True(t, Argument{Key: "k", Value: "v"}.HasKey())
	assert.False(t, Argument{Value: "v"}.HasKey())
}
