package jsonk

import "strings"

// GetPath walks a dot-separated path of object keys from root and returns
// the Value found, or nil if any hop is missing or any non-terminal hop is
// not an Object. It does not Acquire the result; callers that need to hold
// it past root's lifetime must Acquire explicitly. This mirrors
// jsonk_get_value_by_path (src/jsonk.c): object-member traversal only, no
// array indexing and no JSON-Pointer escaping, per spec.md §4.6's
// Non-goals.
func GetPath(root *Value, path string) *Value {
	if len(path) > MaxPathLen {
		return nil
	}
	cur := root
	for _, key := range strings.Split(path, ".") {
		if key == "" || cur == nil || cur.kind != KindObject {
			return nil
		}
		cur = cur.Get(key)
	}
	return cur
}

// SetPath walks path from root, creating intermediate Objects as needed,
// and sets the final component to a deep copy of val; the caller keeps its
// own reference to val and remains responsible for releasing it.
// A non-terminal hop that already holds a non-Object value is replaced
// with a fresh, empty Object (the old value is released) rather than
// failing — matching jsonk_set_value_by_path (src/jsonk.c:1436-1448),
// which overwrites a non-object intermediate member the same way it
// creates a missing one.
func SetPath(b *budget, root *Value, path string, val *Value) error {
	if root.kind != KindObject {
		return wrapf(ErrType, "SetPath: root is not an object")
	}
	if len(path) > MaxPathLen {
		return wrapf(ErrPath, "path length %d exceeds %d", len(path), MaxPathLen)
	}
	keys := strings.Split(path, ".")
	for _, k := range keys {
		if k == "" {
			return wrapf(ErrPath, "empty path component in %q", path)
		}
	}
	cur := root
	for _, key := range keys[:len(keys)-1] {
		next := cur.Get(key)
		if next == nil || next.kind != KindObject {
			child, err := NewObject(b)
			if err != nil {
				return err
			}
			if err := cur.Set(b, key, child); err != nil {
				child.Release()
				return err
			}
			cur = child
			continue
		}
		cur = next
	}
	cp, err := DeepCopy(b, val)
	if err != nil {
		return err
	}
	if err := cur.Set(b, keys[len(keys)-1], cp); err != nil {
		cp.Release()
		return err
	}
	return nil
}

// GetString, GetInt64 and GetBool are typed convenience wrappers over
// GetPath, the same "typed accessor over a lazily-resolved lookup" shape as
// the teacher's Res-returning Get (json/get.go), adapted here to return
// (value, ok) since jsonk's tree is already materialized and has no lazy
// "not yet parsed" state to represent.
func GetString(root *Value, path string) (string, bool) {
	v := GetPath(root, path)
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func GetInt64(root *Value, path string) (int64, bool) {
	v := GetPath(root, path)
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	if v.n.Negative {
		return -int64(v.n.Integer), true
	}
	return int64(v.n.Integer), true
}

func GetBool(root *Value, path string) (bool, bool) {
	v := GetPath(root, path)
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}
