package jsonk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueRefcountLifecycle(t *testing.T) {
	v, err := NewString(nil, "hi")
	require.NoError(t, err)
	require.EqualValues(t, 1, v.refcount)

	v.Acquire()
	require.EqualValues(t, 2, v.refcount)

	v.Release()
	require.EqualValues(t, 1, v.refcount)

	v.Release() // drops to zero, tears down and returns to the pool
}

func TestObjectSetGetRemove(t *testing.T) {
	obj, err := NewObject(nil)
	require.NoError(t, err)
	defer obj.Release()

	a, err := NewInt64(nil, 1)
	require.NoError(t, err)
	require.NoError(t, obj.Set(nil, "a", a))
	require.Equal(t, 1, obj.Len())
	require.True(t, obj.Has("a"))

	got := obj.Get("a")
	require.Equal(t, uint64(1), got.NumberValue().Integer)

	require.True(t, obj.Remove("a"))
	require.False(t, obj.Has("a"))
	require.Equal(t, 0, obj.Len())
	require.False(t, obj.Remove("a"))
}

func TestObjectSetReplacesExistingKey(t *testing.T) {
	obj, err := NewObject(nil)
	require.NoError(t, err)
	defer obj.Release()

	a1, err := NewInt64(nil, 1)
	require.NoError(t, err)
	require.NoError(t, obj.Set(nil, "a", a1))

	a2, err := NewInt64(nil, 2)
	require.NoError(t, err)
	require.NoError(t, obj.Set(nil, "a", a2))

	require.Equal(t, 1, obj.Len())
	require.Equal(t, uint64(2), obj.Get("a").NumberValue().Integer)
}

func TestArrayAppendAndEach(t *testing.T) {
	arr, err := NewArray(nil)
	require.NoError(t, err)
	defer arr.Release()

	for i := int64(0); i < 3; i++ {
		val, err := NewInt64(nil, i)
		require.NoError(t, err)
		require.NoError(t, arr.Append(nil, val))
	}

	require.Equal(t, 3, arr.Len())

	var seen []int64
	arr.EachElement(func(i int, val *Value) {
		seen = append(seen, int64(val.NumberValue().Integer))
	})
	require.Equal(t, []int64{0, 1, 2}, seen)

	require.Equal(t, uint64(1), arr.At(1).NumberValue().Integer)
	require.Nil(t, arr.At(99))
}

func TestObjectRejectsExcessiveMemberCount(t *testing.T) {
	obj, err := NewObject(nil)
	require.NoError(t, err)
	defer obj.Release()

	for i := 0; i < MaxObjectMembers; i++ {
		val, err := NewInt64(nil, int64(i))
		require.NoError(t, err)
		require.NoError(t, obj.Set(nil, fmt.Sprintf("k%d", i), val))
	}

	val, err := NewInt64(nil, 0)
	require.NoError(t, err)
	err = obj.Set(nil, "overflow-key", val)
	require.ErrorIs(t, err, ErrLimit)
	val.Release()
}
