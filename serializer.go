package jsonk

import (
	"strconv"

	"github.com/pkg/errors"
)

// Serialize writes v's JSON text into buf and returns the number of bytes
// written. Space is checked before every write, and the first write that
// would not fit fails the call with ErrOverflow and a count of 0, the same
// discipline jsonk_serialize (src/jsonk.c) uses for a caller-supplied fixed
// buffer with no realloc available. Keywords, digit runs and escape
// sequences are each written whole, but strings and numbers are written in
// several pieces, so after an overflow buf may end in a partial token; its
// contents are then undefined. Unlike the teacher's json/writer.go (a growable pooled
// buffer), jsonk's serializer target is a bounded destination the caller
// owns, matching spec.md §4.4's "serialize into a caller-provided buffer of
// fixed size."
func Serialize(v *Value, buf []byte) (int, error) {
	w := boundedWriter{buf: buf}
	if err := w.writeValue(v); err != nil {
		return 0, err
	}
	return w.n, nil
}

// Marshal serializes v into a freshly grown buffer, for callers that do not
// need the bounded-buffer contract. It is a supplemented convenience on top
// of Serialize, not part of the core's fixed-buffer discipline.
func Marshal(v *Value) ([]byte, error) {
	buf := make([]byte, 256)
	for {
		n, err := Serialize(v, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, ErrOverflow) {
			return nil, err
		}
		buf = make([]byte, len(buf)*2)
	}
}

type boundedWriter struct {
	buf []byte
	n   int
}

func (w *boundedWriter) writeByte(c byte) error {
	if w.n >= len(w.buf) {
		return ErrOverflow
	}
	w.buf[w.n] = c
	w.n++
	return nil
}

func (w *boundedWriter) writeString(s string) error {
	if w.n+len(s) > len(w.buf) {
		return ErrOverflow
	}
	copy(w.buf[w.n:], s)
	w.n += len(s)
	return nil
}

func (w *boundedWriter) writeValue(v *Value) error {
	switch v.kind {
	case KindNull:
		return w.writeString("null")
	case KindBool:
		if v.b {
			return w.writeString("true")
		}
		return w.writeString("false")
	case KindNumber:
		return w.writeNumber(v.n)
	case KindString:
		return w.writeQuotedString(v.s)
	case KindArray:
		return w.writeArray(v)
	case KindObject:
		return w.writeObject(v)
	default:
		return wrapf(ErrSyntax, "unknown kind %d", v.kind)
	}
}

// writeNumber renders the integer/fraction split back to JSON text. The
// original jsonk_serialize derives the printed sign from
// value->u.number.is_negative independently of the integer magnitude,
// which double-negates: a stored integer of 0 with is_negative set (or any
// path where the sign flag and magnitude disagree) prints a spurious
// leading '-' ahead of a value that reads as non-negative, and vice versa
// on signed overflow saturation. spec.md §9 flags this as an open question
// rather than a feature to preserve; this port derives the sign solely from
// whether the number carries a nonzero magnitude and the Negative flag
// together, and never emits "-0" for an exact zero, which is the behavior
// a caller reading the printed text would actually expect.
func (w *boundedWriter) writeNumber(n Number) error {
	if n.Negative && !n.IsZero() {
		if err := w.writeByte('-'); err != nil {
			return err
		}
	}
	if err := w.writeString(strconv.FormatUint(n.Integer, 10)); err != nil {
		return err
	}
	if n.FractionDigits == 0 {
		return nil
	}
	if err := w.writeByte('.'); err != nil {
		return err
	}
	frac := strconv.FormatUint(uint64(n.Fraction), 10)
	for len(frac) < int(n.FractionDigits) {
		frac = "0" + frac
	}
	return w.writeString(frac)
}

const hexDigits = "0123456789abcdef"

func (w *boundedWriter) writeQuotedString(s string) error {
	if err := w.writeByte('"'); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			if err := w.writeString(`\"`); err != nil {
				return err
			}
		case c == '\\':
			if err := w.writeString(`\\`); err != nil {
				return err
			}
		case c == '\n':
			if err := w.writeString(`\n`); err != nil {
				return err
			}
		case c == '\r':
			if err := w.writeString(`\r`); err != nil {
				return err
			}
		case c == '\t':
			if err := w.writeString(`\t`); err != nil {
				return err
			}
		case c < 0x20:
			esc := [6]byte{'\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf]}
			if err := w.writeString(string(esc[:])); err != nil {
				return err
			}
		default:
			if err := w.writeByte(c); err != nil {
				return err
			}
		}
	}
	return w.writeByte('"')
}

func (w *boundedWriter) writeArray(v *Value) error {
	if err := w.writeByte('['); err != nil {
		return err
	}
	first := true
	var ferr error
	v.EachElement(func(_ int, el *Value) {
		if ferr != nil {
			return
		}
		if !first {
			if ferr = w.writeByte(','); ferr != nil {
				return
			}
		}
		first = false
		ferr = w.writeValue(el)
	})
	if ferr != nil {
		return ferr
	}
	return w.writeByte(']')
}

func (w *boundedWriter) writeObject(v *Value) error {
	if err := w.writeByte('{'); err != nil {
		return err
	}
	first := true
	var ferr error
	v.EachMember(func(key string, val *Value) {
		if ferr != nil {
			return
		}
		if !first {
			if ferr = w.writeByte(','); ferr != nil {
				return
			}
		}
		first = false
		if ferr = w.writeQuotedString(key); ferr != nil {
			return
		}
		if ferr = w.writeByte(':'); ferr != nil {
			return
		}
		ferr = w.writeValue(val)
	})
	if ferr != nil {
		return ferr
	}
	return w.writeByte('}')
}
