package jsonk

import "sync/atomic"

// Kind identifies the concrete shape held by a Value, mirroring the
// JSONK_TYPE_* enum of the original jsonk_value (include/jsonk.h) and the
// teacher's json.Type enum (json/value.go).
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Number is the split integer/fraction representation spec.md §3 requires
// in place of a float64: "a Number is stored as an integer part, a fraction
// part... and a sign, not as a floating-point value" — the direct Go
// equivalent of jsonk_number in include/jsonk.h (int64_t integer, uint32_t
// fraction, uint8_t fraction_digits, bool is_negative).
type Number struct {
	Integer        uint64
	Fraction       uint32
	FractionDigits uint8
	Negative       bool

	// IsInteger is false for any literal with a fraction or an exponent
	// (e.g. "5e3"), even when its magnitude is whole — per spec.md §4.3
	// that is distinct from a plain integer literal like "5000". An
	// overflowing integer literal still saturates with IsInteger true.
	IsInteger bool
}

// IsZero reports whether the number is exactly 0 or -0.
func (n Number) IsZero() bool {
	return n.Integer == 0 && n.Fraction == 0
}

// member is one key/value pair of an Object, linked into an intrusive
// doubly-linked list the way jsonk_member (include/jsonk.h) links into
// jsonk_object.members, and the way the teacher's kv/kvPairs (json/value.go)
// models an ordered map. Go has no generic intrusive list type in this
// corpus, so the list is hand-rolled here rather than reached for
// container/list — pointer-chasing next/prev on the node itself, matching
// the original's struct list_head embedding exactly.
type member struct {
	key        string
	val        *Value
	next, prev *member
}

// arrayElement is one slot of an Array, linked the same way jsonk_array's
// elements list is in the C source.
type arrayElement struct {
	val        *Value
	next, prev *arrayElement
}

// objectBody holds an Object's ordered members plus a size for O(1) Len.
type objectBody struct {
	head, tail *member
	count      int
}

// arrayBody holds an Array's ordered elements plus a size for O(1) Len.
type arrayBody struct {
	head, tail *arrayElement
	count      int
}

// Value is a refcounted JSON tree node. The refcount mirrors jsonk_value's
// atomic_t refcount (include/jsonk.h): Acquire/Release pairs govern the
// lifetime the way jsonk_value_get/jsonk_value_put do in the C source. Go's
// garbage collector would reclaim an unreferenced tree on its own, but the
// spec's sharing model is explicit-refcount, not GC-implicit — a value
// handed out by Get keeps its owner's tree alive only as long as a caller
// holds a reference, and a zero-refcount Release actually recycles the node
// back to its slab pool rather than merely dropping a GC root. This is
// the teacher's scope, generalized: json/value.go has no refcounting at all
// (its Value is GC-owned), so the refcount lifecycle here is grounded
// directly on jsonk_value_get/jsonk_value_put instead.
type Value struct {
	refcount int32
	kind     Kind

	b bool
	n Number
	s string
	o objectBody
	a arrayBody
}

// Kind reports the concrete type this Value holds.
func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool   { return v.kind == KindNull }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsNumber() bool { return v.kind == KindNumber }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsArray() bool  { return v.kind == KindArray }
func (v *Value) IsObject() bool { return v.kind == KindObject }

// Bool returns the boolean payload. Calling it on a non-bool Value is a
// programmer error and returns false, the same "caller already checked
// Kind" contract jsonk_value's union carries.
func (v *Value) Bool() bool { return v.b }

// NumberValue returns the numeric payload.
func (v *Value) NumberValue() Number { return v.n }

// Str returns the string payload.
func (v *Value) Str() string { return v.s }

// Len reports the number of members (Object) or elements (Array). It is 0
// for any other Kind.
func (v *Value) Len() int {
	switch v.kind {
	case KindObject:
		return v.o.count
	case KindArray:
		return v.a.count
	default:
		return 0
	}
}

// ─── Refcounting ───

// Acquire increments v's refcount and returns v, mirroring
// jsonk_value_get's "borrow a reference" contract. A nil Value acquires to
// nil, so call sites that propagate an absent Get result need no extra
// nil check.
func (v *Value) Acquire() *Value {
	if v == nil {
		return nil
	}
	atomic.AddInt32(&v.refcount, 1)
	return v
}

// Release decrements v's refcount and, once it reaches zero, tears the
// subtree down and returns every node to its slab pool — the Go analogue of
// jsonk_value_put calling jsonk_value_free_internal. Release is safe to call
// on nil.
func (v *Value) Release() {
	if v == nil {
		return
	}
	if atomic.AddInt32(&v.refcount, -1) > 0 {
		return
	}
	v.teardown()
}

// teardown releases every child reference and returns this node (and, for
// containers, every member/arrayElement wrapper) to its pool. It assumes
// the caller has already observed refcount == 0 — matching
// jsonk_value_free_internal's unconditional walk once jsonk_value_put sees
// the count hit zero.
func (v *Value) teardown() {
	switch v.kind {
	case KindObject:
		m := v.o.head
		for m != nil {
			next := m.next
			m.val.Release()
			releaseMember(m)
			m = next
		}
		v.o = objectBody{}
	case KindArray:
		e := v.a.head
		for e != nil {
			next := e.next
			e.val.Release()
			releaseElement(e)
			e = next
		}
		v.a = arrayBody{}
	}
	releaseValueNode(v)
}

// ─── Constructors ───
//
// Every constructor takes a *budget so it debits the same per-parse budget
// the parser uses (spec.md §4.1). Callers outside a parse pass nil, which
// budget.debit treats as "untracked" — see pool.go.

// NewNull returns a new Value of Kind Null with refcount 1.
func NewNull(b *budget) (*Value, error) {
	v, err := acquireValue(b)
	if err != nil {
		return nil, err
	}
	v.kind = KindNull
	return v, nil
}

// NewBool returns a new Value of Kind Bool with refcount 1.
func NewBool(b *budget, x bool) (*Value, error) {
	v, err := acquireValue(b)
	if err != nil {
		return nil, err
	}
	v.kind = KindBool
	v.b = x
	return v, nil
}

// NewNumber returns a new Value of Kind Number with refcount 1.
func NewNumber(b *budget, n Number) (*Value, error) {
	v, err := acquireValue(b)
	if err != nil {
		return nil, err
	}
	v.kind = KindNumber
	v.n = n
	return v, nil
}

// NewInt64 is a convenience constructor for whole-number values.
func NewInt64(b *budget, x int64) (*Value, error) {
	n := Number{Negative: x < 0, IsInteger: true}
	if x < 0 {
		n.Integer = uint64(-x)
	} else {
		n.Integer = uint64(x)
	}
	return NewNumber(b, n)
}

// NewString returns a new Value of Kind String with refcount 1. s is stored
// as-is (already unescaped, already length-checked by the caller); use the
// parser to go from raw JSON text to a String value.
func NewString(b *budget, s string) (*Value, error) {
	if len(s) > MaxStringLength {
		return nil, wrapf(ErrLimit, "string length %d exceeds %d", len(s), MaxStringLength)
	}
	v, err := acquireValue(b)
	if err != nil {
		return nil, err
	}
	v.kind = KindString
	v.s = s
	return v, nil
}

// NewArray returns a new, empty Value of Kind Array with refcount 1.
func NewArray(b *budget) (*Value, error) {
	v, err := acquireValue(b)
	if err != nil {
		return nil, err
	}
	v.kind = KindArray
	return v, nil
}

// NewObject returns a new, empty Value of Kind Object with refcount 1.
func NewObject(b *budget) (*Value, error) {
	v, err := acquireValue(b)
	if err != nil {
		return nil, err
	}
	v.kind = KindObject
	return v, nil
}

// ─── Array mutators ───

// Append adds val to the end of the array, taking ownership of one
// reference (the array does not Acquire val itself; pass an already-owned
// reference, the same convention jsonk_array_add_element_tracked uses).
func (v *Value) Append(b *budget, val *Value) error {
	if v.kind != KindArray {
		return wrapf(ErrType, "Append: not an array")
	}
	if v.a.count >= MaxArraySize {
		return wrapf(ErrLimit, "array length %d exceeds %d", v.a.count, MaxArraySize)
	}
	e, err := acquireElement(b)
	if err != nil {
		return err
	}
	e.val = val
	e.prev = v.a.tail
	if v.a.tail != nil {
		v.a.tail.next = e
	} else {
		v.a.head = e
	}
	v.a.tail = e
	v.a.count++
	return nil
}

// At returns the element at index i, or nil if i is out of range. It walks
// from whichever end is closer, the same linear-scan cost
// jsonk_array_get_element pays in the C source — arrays are meant to be
// iterated, not randomly indexed.
func (v *Value) At(i int) *Value {
	if v.kind != KindArray || i < 0 || i >= v.a.count {
		return nil
	}
	if i <= v.a.count/2 {
		e := v.a.head
		for n := 0; n < i; n++ {
			e = e.next
		}
		return e.val
	}
	e := v.a.tail
	for n := v.a.count - 1; n > i; n-- {
		e = e.prev
	}
	return e.val
}

// EachElement calls fn for every array element in order. fn must not mutate
// the array.
func (v *Value) EachElement(fn func(i int, val *Value)) {
	if v.kind != KindArray {
		return
	}
	i := 0
	for e := v.a.head; e != nil; e = e.next {
		fn(i, e.val)
		i++
	}
}

// ─── Object mutators ───

// findMember returns the member node for key, or nil. Linear scan, matching
// jsonk_object_find_member and the teacher's objGet — members are ordered
// for round-trip serialization, not hashed.
func (v *Value) findMember(key string) *member {
	for m := v.o.head; m != nil; m = m.next {
		if m.key == key {
			return m
		}
	}
	return nil
}

// Set adds or replaces the member named key, taking ownership of one
// reference to val. Replacing drops the old value's reference (Release),
// the same swap jsonk_object_add_member_tracked performs when find_member
// already has a hit.
func (v *Value) Set(b *budget, key string, val *Value) error {
	if v.kind != KindObject {
		return wrapf(ErrType, "Set: not an object")
	}
	if existing := v.findMember(key); existing != nil {
		existing.val.Release()
		existing.val = val
		return nil
	}
	if v.o.count >= MaxObjectMembers {
		return wrapf(ErrLimit, "object member count %d exceeds %d", v.o.count, MaxObjectMembers)
	}
	m, err := acquireMember(b, len(key))
	if err != nil {
		return err
	}
	m.key = key
	m.val = val
	m.prev = v.o.tail
	if v.o.tail != nil {
		v.o.tail.next = m
	} else {
		v.o.head = m
	}
	v.o.tail = m
	v.o.count++
	return nil
}

// Get returns the member named key without transferring ownership — the
// caller must Acquire it to keep a reference past the owning Object's
// lifetime. Returns nil if key is absent or v is not an Object.
func (v *Value) Get(key string) *Value {
	if v.kind != KindObject {
		return nil
	}
	if m := v.findMember(key); m != nil {
		return m.val
	}
	return nil
}

// Has reports whether key is present on an Object.
func (v *Value) Has(key string) bool {
	return v.kind == KindObject && v.findMember(key) != nil
}

// Remove deletes the member named key, releasing its value reference. It
// reports whether the key was present, matching jsonk_object_remove_member's
// boolean-found return.
func (v *Value) Remove(key string) bool {
	if v.kind != KindObject {
		return false
	}
	m := v.findMember(key)
	if m == nil {
		return false
	}
	if m.prev != nil {
		m.prev.next = m.next
	} else {
		v.o.head = m.next
	}
	if m.next != nil {
		m.next.prev = m.prev
	} else {
		v.o.tail = m.prev
	}
	v.o.count--
	m.val.Release()
	releaseMember(m)
	return true
}

// EachMember calls fn for every object member in insertion order. fn must
// not mutate the object.
func (v *Value) EachMember(fn func(key string, val *Value)) {
	if v.kind != KindObject {
		return
	}
	for m := v.o.head; m != nil; m = m.next {
		fn(m.key, m.val)
	}
}
