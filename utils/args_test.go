package utils

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_SingleValues(t *testing.T) {
	// Act: Parse two distinct names
	args, err := ParseArgs([]string{"-name?TestApp", "-port?8080"}, nil, false)

	// Assert: each name maps to a single value
	require.NoError(t, err)
	assert.Len(t, args, 2, "Expected table to contain exactly 2 entries")

	name, ok := args["name"].Single()
	assert.True(t, ok)
	assert.Equal(t, "TestApp", name)
	assert.Equal(t, KindSingle, args["port"].Kind())
	assert.Equal(t, []string{"8080"}, args.Values("port"))
}

func TestParseArgs_RepeatedNamePromotesToMultiple(t *testing.T) {
	args, err := ParseArgs([]string{"-a?1", "-a?2", "-a?3"}, RequiredSpec{}, false)

	require.NoError(t, err)
	assert.Equal(t, ArgumentTable{"a": Multiple("1", "2", "3")}, args)
	assert.Equal(t, KindMultiple, args["a"].Kind())

	_, ok := args["a"].Single()
	assert.False(t, ok, "A repeated argument is not a single value")
}

func TestParseArgs_TwiceIsMultipleOfTwo(t *testing.T) {
	args, err := ParseArgs([]string{"-x?first", "-y?other", "-x?second"}, nil, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, args.Values("x"))
	assert.Equal(t, KindSingle, args["y"].Kind())
}

func TestParseArgs_TokensAreConcatenated(t *testing.T) {
	// Arrange: the same arguments given as one token and as several
	joined, err := ParseArgs([]string{"-a?1-b?2"}, nil, false)
	require.NoError(t, err)

	split, err := ParseArgs([]string{"-a?1", "-b?2"}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, split, joined)
}

func TestParseArgs_AdjacentTokensFuseWithoutDelimiter(t *testing.T) {
	// "-a?1" followed by "b?2" has no '-' between them, so "b?2" becomes part of a's value
	args, err := ParseArgs([]string{"-a?1", "b?2"}, nil, false)

	require.NoError(t, err)
	assert.Equal(t, ArgumentTable{"a": Single("1b?2")}, args)
}

func TestParseArgs_EmptySegmentsAreSkipped(t *testing.T) {
	args, err := ParseArgs([]string{"--a?1", "---", "-b?2-"}, nil, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, args.Names())
}

func TestParseArgs_ValueKeepsLaterQuestionMarks(t *testing.T) {
	args, err := ParseArgs([]string{"-filter?(cn=a?b)"}, nil, false)

	require.NoError(t, err)
	value, ok := args.Get("filter")
	assert.True(t, ok)
	assert.Equal(t, "(cn=a?b)", value)
}

func TestParseArgs_EmptyValueAndEmptyName(t *testing.T) {
	args, err := ParseArgs([]string{"-novalue?", "-?orphan"}, nil, false)

	require.NoError(t, err)
	assert.Equal(t, []string{""}, args.Values("novalue"))
	assert.True(t, args.Has(""), "An empty name is kept as a key")
	assert.Equal(t, []string{"orphan"}, args.Values(""))
}

func TestParseArgs_EmptyArgs(t *testing.T) {
	args, err := ParseArgs([]string{}, nil, false)

	require.NoError(t, err)
	assert.Empty(t, args, "Expected empty table when no args provided")
}

func TestParseArgs_MalformedFragment(t *testing.T) {
	args, err := ParseArgs([]string{"-name?ok", "-invalid"}, nil, false)

	require.Error(t, err)
	assert.Nil(t, args, "No partial result on malformed input")
	assert.True(t, errors.Is(err, ErrMalformedArgument))

	var malformed *MalformedArgumentError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "invalid", malformed.Fragment)
}

func TestParseArgs_DashInsideValueSplitsFragment(t *testing.T) {
	// '-' always starts a new fragment, so "2020" and "01" are separate fragments and "01" has no '?'
	_, err := ParseArgs([]string{"-date?2020-01"}, nil, false)

	assert.ErrorIs(t, err, ErrMalformedArgument)
}

func TestParseArgs_RequiredSatisfied(t *testing.T) {
	args, err := ParseArgs([]string{"-x?hello"}, RequiredSpec{{Name: "x", Message: "err"}}, false)

	require.NoError(t, err)
	assert.Equal(t, ArgumentTable{"x": Single("hello")}, args)
}

func TestParseArgs_RequiredMissing(t *testing.T) {
	args, err := ParseArgs([]string{"-x?hello"}, RequiredSpec{{Name: "y", Message: "missing y"}}, false)

	require.Error(t, err)
	assert.Nil(t, args)
	assert.EqualError(t, err, "missing y")
	assert.ErrorIs(t, err, ErrMissingArgument)

	var missing *MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "y", missing.Name)
}

func TestParseArgs_FirstMissingInRequiredOrder(t *testing.T) {
	required := RequiredSpec{
		{Name: "a", Message: "need a"},
		{Name: "b", Message: "need b"},
		{Name: "c", Message: "need c"},
	}

	_, err := ParseArgs([]string{"-a?1"}, required, false)

	assert.EqualError(t, err, "need b")
}

func TestParseArgs_MalformedWinsOverMissing(t *testing.T) {
	_, err := ParseArgs([]string{"-broken"}, RequiredSpec{{Name: "y", Message: "missing y"}}, false)

	assert.ErrorIs(t, err, ErrMalformedArgument)
}

func TestArgParser_VerboseLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf, "", 0)

	_, err := NewArgParser(nil, true, l).Parse([]string{"-a?1"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "INFO: Parsed 1 argument(s)")
}

func TestArgParser_QuietDoesNotLog(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf, "", 0)

	_, err := NewArgParser(nil, false, l).Parse([]string{"-a?1"})

	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestArgParser_RequiredSpecIsCopied(t *testing.T) {
	required := RequiredSpec{{Name: "a", Message: "need a"}}
	p := NewArgParser(required, false, nil)

	// Mutating the caller's slice must not change the parser
	required[0].Name = "z"

	_, err := p.Parse([]string{"-a?1"})
	assert.NoError(t, err)
}

func TestArgParser_ReusableAcrossCalls(t *testing.T) {
	p := NewArgParser(nil, false, nil)

	first, err := p.Parse([]string{"-a?1"})
	require.NoError(t, err)
	second, err := p.Parse([]string{"-a?2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, first.Values("a"))
	assert.Equal(t, []string{"2"}, second.Values("a"))
}

func TestArgumentTable_Helpers(t *testing.T) {
	table := ArgumentTable{"b": Single("x"), "a": Multiple("1", "2")}

	first, ok := table.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", first)

	_, ok = table.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, table.Values("missing"))
	assert.Equal(t, []string{"a", "b"}, table.Names())
}

func TestArgValue_ValuesIsACopy(t *testing.T) {
	v := Multiple("1", "2")

	values := v.Values()
	values[0] = "changed"

	assert.Equal(t, []string{"1", "2"}, v.Values())
}
