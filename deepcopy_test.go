package jsonk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeepCopyIndependence(t *testing.T) {
	orig, err := Parse(`{"nested":{"a":1},"list":[1,2,3]}`)
	require.NoError(t, err)
	defer orig.Release()

	cp, err := DeepCopy(nil, orig)
	require.NoError(t, err)
	defer cp.Release()

	require.NoError(t, cp.Get("nested").Set(nil, "a", must(NewInt64(nil, 99))))

	a, ok := GetInt64(orig, "nested.a")
	require.True(t, ok)
	require.Equal(t, int64(1), a, "mutating the copy must not affect the original")

	a2, ok := GetInt64(cp, "nested.a")
	require.True(t, ok)
	require.Equal(t, int64(99), a2)
}

func TestDeepCopyRejectsExcessiveDepth(t *testing.T) {
	root, err := NewObject(nil)
	require.NoError(t, err)
	defer root.Release()

	cur := root
	for i := 0; i <= MaxDepth+1; i++ {
		child, err := NewObject(nil)
		require.NoError(t, err)
		require.NoError(t, cur.Set(nil, "n", child))
		cur = child
	}

	_, err = DeepCopy(nil, root)
	require.ErrorIs(t, err, ErrDepth)
}

func must(v *Value, err error) *Value {
	if err != nil {
		panic(err)
	}
	return v
}
