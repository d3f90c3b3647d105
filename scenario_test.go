package jsonk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenarios 1-6 mirror spec.md §8's end-to-end walkthroughs: parse-then-
// serialize round trip, successful merge patch, deletion via null, nested
// merge, malformed-patch fallback, and a destination buffer too small to
// hold the result.

func TestScenarioParseSerializeRoundTrip(t *testing.T) {
	src := `{"id":1,"tags":["x","y"],"meta":{"ok":true}}`
	v, err := Parse(src)
	require.NoError(t, err)
	defer v.Release()

	buf := make([]byte, 256)
	n, err := Serialize(v, buf)
	require.NoError(t, err)

	v2, err := Parse(string(buf[:n]))
	require.NoError(t, err)
	defer v2.Release()

	id, ok := GetInt64(v2, "id")
	require.True(t, ok)
	require.Equal(t, int64(1), id)
	ok2, ok := GetBool(v2, "meta.ok")
	require.True(t, ok)
	require.True(t, ok2)
}

func TestScenarioSuccessfulMergePatch(t *testing.T) {
	target, err := Parse(`{"status":"pending","retries":0}`)
	require.NoError(t, err)
	defer target.Release()

	outcome, err := ApplyPatch(nil, target, `{"status":"done","retries":3}`)
	require.NoError(t, err)
	require.Equal(t, PatchSuccess, outcome)

	status, _ := GetString(target, "status")
	require.Equal(t, "done", status)
}

func TestScenarioDeletionPatch(t *testing.T) {
	target, err := Parse(`{"status":"pending","scratch":"drop-me"}`)
	require.NoError(t, err)
	defer target.Release()

	outcome, err := ApplyPatch(nil, target, `{"scratch":null}`)
	require.NoError(t, err)
	require.Equal(t, PatchSuccess, outcome)
	require.False(t, target.Has("scratch"))
}

func TestScenarioNestedMergePreservesSiblings(t *testing.T) {
	target, err := Parse(`{"profile":{"name":"a","settings":{"theme":"dark","volume":5}}}`)
	require.NoError(t, err)
	defer target.Release()

	outcome, err := ApplyPatch(nil, target, `{"profile":{"settings":{"volume":9}}}`)
	require.NoError(t, err)
	require.Equal(t, PatchSuccess, outcome)

	theme, _ := GetString(target, "profile.settings.theme")
	require.Equal(t, "dark", theme)
	vol, _ := GetInt64(target, "profile.settings.volume")
	require.Equal(t, int64(9), vol)
	name, _ := GetString(target, "profile.name")
	require.Equal(t, "a", name)
}

func TestScenarioIllFormedPatchFallback(t *testing.T) {
	target, err := Parse(`{"a":1}`)
	require.NoError(t, err)
	defer target.Release()

	outcome, err := ApplyPatch(nil, target, `{"a":`)
	require.NoError(t, err)
	require.Equal(t, PatchNoChange, outcome)
	a, _ := GetInt64(target, "a")
	require.Equal(t, int64(1), a)
}

func TestScenarioDestinationBufferTooSmall(t *testing.T) {
	v, err := Parse(`{"a":1,"b":2,"c":3}`)
	require.NoError(t, err)
	defer v.Release()

	_, err = Serialize(v, make([]byte, 2))
	require.ErrorIs(t, err, ErrOverflow)
}

// Edge cases beyond the numbered scenarios: boundary depth, integer
// magnitude extremes, and empty containers.

func TestEdgeCaseDepthAtLimitSucceeds(t *testing.T) {
	src := strings.Repeat("[", MaxDepth) + strings.Repeat("]", MaxDepth)
	v, err := Parse(src)
	require.NoError(t, err)
	v.Release()
}

func TestEdgeCaseDepthOverLimitFails(t *testing.T) {
	src := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	_, err := Parse(src)
	require.ErrorIs(t, err, ErrDepth)
}

func TestEdgeCaseMaxInt64Boundaries(t *testing.T) {
	v, err := NewInt64(nil, 9223372036854775807)
	require.NoError(t, err)
	defer v.Release()
	require.Equal(t, uint64(9223372036854775807), v.NumberValue().Integer)
	require.False(t, v.NumberValue().Negative)

	neg, err := NewInt64(nil, -9223372036854775808)
	require.NoError(t, err)
	defer neg.Release()
	require.True(t, neg.NumberValue().Negative)
}

func TestEdgeCaseEmptyContainers(t *testing.T) {
	obj, err := Parse(`{}`)
	require.NoError(t, err)
	defer obj.Release()
	require.Equal(t, 0, obj.Len())

	arr, err := Parse(`[]`)
	require.NoError(t, err)
	defer arr.Release()
	require.Equal(t, 0, arr.Len())
}
