package jsonk

// DeepCopy returns a structurally independent copy of v, recursing through
// Array elements and Object members the way jsonk_value_deep_copy
// (src/jsonk.c) does. It enforces MaxDepth same as the parser.
//
// jsonk_value_deep_copy's C implementation ignores the return value of a
// nested allocation failure while copying an object's members or an
// array's elements — it presses on, so a mid-copy allocation failure
// produces a truncated clone instead of an error, which is exactly the
// "Possible Source Bug" spec.md §9 calls out. This port is strict: any
// failure releases everything copied so far and returns the error, so
// callers never observe a silently incomplete deep copy.
func DeepCopy(b *budget, v *Value) (*Value, error) {
	return deepCopy(b, v, 0)
}

func deepCopy(b *budget, v *Value, depth int) (*Value, error) {
	if v == nil {
		return nil, nil
	}
	if (v.kind == KindArray || v.kind == KindObject) && depth >= MaxDepth {
		return nil, wrapf(ErrDepth, "nesting exceeds %d", MaxDepth)
	}
	switch v.kind {
	case KindNull:
		return NewNull(b)
	case KindBool:
		return NewBool(b, v.b)
	case KindNumber:
		return NewNumber(b, v.n)
	case KindString:
		return NewString(b, v.s)
	case KindArray:
		return deepCopyArray(b, v, depth)
	case KindObject:
		return deepCopyObject(b, v, depth)
	default:
		return nil, wrapf(ErrSyntax, "unknown kind %d", v.kind)
	}
}

func deepCopyArray(b *budget, v *Value, depth int) (*Value, error) {
	out, err := NewArray(b)
	if err != nil {
		return nil, err
	}
	var copyErr error
	v.EachElement(func(_ int, el *Value) {
		if copyErr != nil {
			return
		}
		cp, err := deepCopy(b, el, depth+1)
		if err != nil {
			copyErr = err
			return
		}
		if err := out.Append(b, cp); err != nil {
			cp.Release()
			copyErr = err
		}
	})
	if copyErr != nil {
		out.Release()
		return nil, copyErr
	}
	return out, nil
}

func deepCopyObject(b *budget, v *Value, depth int) (*Value, error) {
	out, err := NewObject(b)
	if err != nil {
		return nil, err
	}
	var copyErr error
	v.EachMember(func(key string, val *Value) {
		if copyErr != nil {
			return
		}
		cp, err := deepCopy(b, val, depth+1)
		if err != nil {
			copyErr = err
			return
		}
		if err := out.Set(b, key, cp); err != nil {
			cp.Release()
			copyErr = err
		}
	})
	if copyErr != nil {
		out.Release()
		return nil, copyErr
	}
	return out, nil
}
