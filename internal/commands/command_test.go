package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func requireCode(t *testing.T, err error, want ErrorCode, msgAndArgs ...any) {
	t.Helper()
	var ce *CommandError
	require.True(t, errors.As(err, &ce), msgAndArgs...)
	assert.Equal(t, want, ce.Code, msgAndArgs...)
}

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent tomorrow", TypeAdd},
		{"done 2", TypeDone},
		{"undo #1", TypeUndo},
		{"edit 3 call mom", TypeEdit},
		{"rm 1", TypeRemove},
		{"delete 1", TypeRemove},
		{"filter active", TypeFilter},
		{"show completed", TypeFilter},
		{"/clear", TypeClear},
		{"toggle-all", TypeToggleAll},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		require.NoError(t, err, "parse %q", tc.in)
		assert.Equal(t, tc.typeWant, cmd.Type, "parse %q", tc.in)
	}
}

func TestParseKeepsTextSpacing(t *testing.T) {
	cmd, err := Parse("/add  buy  milk ")
	require.NoError(t, err)
	assert.Equal(t, "buy  milk", cmd.Add.Text)

	cmd, err = Parse("edit #2 walk  the dog")
	require.NoError(t, err)
	assert.Equal(t, EditArgs{Row: 2, Text: "walk  the dog"}, *cmd.Edit)
}

func TestParseFilterValue(t *testing.T) {
	cmd, err := Parse("filter COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, model.FilterCompleted, cmd.Filter.Filter)
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"add", "done", "done x", "done 0", "edit 1", "filter", "filter later", "clear now"} {
		_, err := Parse(in)
		requireCode(t, err, ErrCodeInvalidArgument, "parse %q", in)
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	_, err := Parse(" / ")
	requireCode(t, err, ErrCodeEmptyInput)

	_, err = Parse("/unknown do x")
	requireCode(t, err, ErrCodeUnknownCommand)
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	require.NoError(t, err)

	var got AddArgs
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			got = a
			return Result{Message: "ok"}, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "write docs", got.Text)
	assert.Equal(t, "ok", res.Message)
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"done 1", "clear", "toggle-all", "filter all"} {
		cmd, err := Parse(in)
		require.NoError(t, err, "parse %q", in)
		_, err = Execute(cmd, Handlers{})
		requireCode(t, err, ErrCodeHandlerMissing, "execute %q", in)
	}
}
