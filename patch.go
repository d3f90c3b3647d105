package jsonk

import "github.com/pkg/errors"

// PatchOutcome classifies the result of ApplyPatch, mirroring
// jsonk_patch_result (include/jsonk.h).
type PatchOutcome int

const (
	PatchSuccess PatchOutcome = iota
	PatchNoChange
	PatchErrorParse
	PatchErrorType
	PatchErrorMemory
	PatchErrorOverflow
)

// Patcher applies JSON Merge Patches with a caller-configurable memory
// budget and diagnostic sink, the same caller-supplied-collaborator shape
// Parser uses. The zero value is a Patcher with default limits and no
// logging.
type Patcher struct {
	MaxMemory int
	Logger    Logger
}

func (p *Patcher) logger() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return defaultLogger
}

// ApplyPatch applies patchText to target in place.
func (p *Patcher) ApplyPatch(target *Value, patchText string) (PatchOutcome, error) {
	return applyPatch(newBudget(p.MaxMemory), target, patchText, p.logger())
}

// ApplyPatchBytes parses targetBytes and patchBytes, applies the merge
// patch, and serializes the result into outBuf, returning the number of
// bytes written. This is the byte-in/byte-out entry point spec.md §4.7/§6
// describes (target_bytes/patch_bytes in, out_buf/out_bufsize out) for
// callers that hold JSON text rather than an already-parsed target Value —
// see spec.md §8 scenario 6, where the destination buffer is too small to
// hold the patched result.
func (p *Patcher) ApplyPatchBytes(targetBytes, patchBytes string, outBuf []byte) (PatchOutcome, int, error) {
	b := newBudget(p.MaxMemory)
	target, err := Parse(targetBytes)
	if err != nil {
		p.logger().Warnf("jsonk: patch target failed to parse: %v", err)
		return PatchErrorParse, 0, err
	}
	defer target.Release()

	outcome, err := applyPatch(b, target, patchBytes, p.logger())
	if err != nil {
		return outcome, 0, err
	}

	n, serr := Serialize(target, outBuf)
	if serr != nil {
		if errors.Is(serr, ErrOverflow) {
			p.logger().Warnf("jsonk: patch result overflows destination buffer of %d bytes", len(outBuf))
			return PatchErrorOverflow, 0, serr
		}
		return PatchErrorParse, 0, serr
	}
	return outcome, n, nil
}

// ApplyPatch applies a JSON Merge Patch (RFC 7386 semantics, generalized
// per spec.md §4.7/§8's glossary: a member whose patch value is null, an
// empty string, an empty Object or an empty Array deletes the
// corresponding target member; any other value replaces it, recursively
// for nested objects) to target.
//
// A malformed patch document falls back to a verbatim no-op — PatchNoChange
// with target unmodified and no error — rather than failing the call,
// matching jsonk_apply_patch's "if the patch fails to parse, leave the
// target untouched and report NO_CHANGE" contract in src/jsonk.c. A
// well-formed patch that is not itself a JSON object is ErrorType, since
// merge-patch is only defined over object patches (RFC 7386 §2, and
// jsonk_merge_objects requires both sides to be objects).
//
// Apply is atomic: a deep copy of target is merged in isolation, and only a
// fully successful merge replaces target's contents. A failure partway
// through the merge leaves target exactly as it was, matching
// jsonk_apply_patch's "merge into a scratch copy, swap on success" flow.
func ApplyPatch(b *budget, target *Value, patchText string) (PatchOutcome, error) {
	return applyPatch(b, target, patchText, defaultLogger)
}

func applyPatch(b *budget, target *Value, patchText string, logger Logger) (PatchOutcome, error) {
	if target.kind != KindObject {
		return PatchErrorType, wrapf(ErrType, "ApplyPatch: target is not an object")
	}
	patchVal, err := Parse(patchText)
	if err != nil {
		logger.Warnf("jsonk: patch document failed to parse, applying no-op: %v", err)
		return PatchNoChange, nil
	}
	defer patchVal.Release()
	if patchVal.kind != KindObject {
		return PatchErrorType, wrapf(ErrType, "ApplyPatch: patch document is not an object")
	}

	scratch, err := DeepCopy(b, target)
	if err != nil {
		return patchErrorOutcome(err), err
	}

	changed, err := mergeObjects(b, scratch, patchVal)
	if err != nil {
		scratch.Release()
		logger.Warnf("jsonk: merge patch failed: %v", err)
		return patchErrorOutcome(err), err
	}
	if !changed {
		scratch.Release()
		return PatchNoChange, nil
	}

	swapContents(target, scratch)
	scratch.Release()
	return PatchSuccess, nil
}

// patchErrorOutcome classifies a merge-phase failure by its sentinel: a
// budget/allocation failure is ErrorMemory, anything else falls back to
// ErrorParse, jsonk_patch_result's generic failure code.
func patchErrorOutcome(err error) PatchOutcome {
	if errors.Is(err, ErrMemory) {
		return PatchErrorMemory
	}
	return PatchErrorParse
}

// MergePatch applies patch (already a parsed Object Value) onto target in
// place, the same recursive merge ApplyPatch performs after parsing, for
// callers that already hold both trees as Values rather than JSON text.
func MergePatch(b *budget, target, patch *Value) (bool, error) {
	if target.kind != KindObject || patch.kind != KindObject {
		return false, wrapf(ErrType, "MergePatch: target and patch must both be objects")
	}
	return mergeObjects(b, target, patch)
}

// isEmptyPatchValue reports whether v counts as "empty" for merge-patch
// deletion purposes: null, an empty string, an empty Object, or an empty
// Array — the delete-on-empty rule spec.md §4.7/§8's glossary describes,
// broader than RFC 7386's null-only deletion.
func isEmptyPatchValue(v *Value) bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == ""
	case KindObject, KindArray:
		return v.Len() == 0
	default:
		return false
	}
}

// mergeObjects is jsonk_merge_objects (src/jsonk.c) ported directly, with
// its delete condition generalized to the full empty-value rule: for each
// member of patch, an empty value (see isEmptyPatchValue) deletes the
// corresponding target member (if present), a member whose value is a
// non-empty object merges recursively (creating the target member as an
// empty object first if it was absent or not an object), and any other
// value replaces the target member outright. changed tracks whether
// anything actually moved, so ApplyPatch can report NO_CHANGE for a
// well-formed but no-op patch — e.g. {"a":null} against a target with no
// "a" member.
func mergeObjects(b *budget, target, patch *Value) (bool, error) {
	changed := false
	var mergeErr error
	patch.EachMember(func(key string, patchVal *Value) {
		if mergeErr != nil {
			return
		}
		if isEmptyPatchValue(patchVal) {
			if target.Remove(key) {
				changed = true
			}
			return
		}
		if patchVal.kind == KindObject {
			existing := target.Get(key)
			if existing == nil || existing.kind != KindObject {
				child, err := NewObject(b)
				if err != nil {
					mergeErr = err
					return
				}
				if err := target.Set(b, key, child); err != nil {
					child.Release()
					mergeErr = err
					return
				}
				existing = child
				changed = true
			}
			sub, err := mergeObjects(b, existing, patchVal)
			if err != nil {
				mergeErr = err
				return
			}
			changed = changed || sub
			return
		}
		cp, err := deepCopy(b, patchVal, 0)
		if err != nil {
			mergeErr = err
			return
		}
		if err := target.Set(b, key, cp); err != nil {
			cp.Release()
			mergeErr = err
			return
		}
		changed = true
	})
	return changed, mergeErr
}

// swapContents moves dst's container fields into src's structural position:
// after this call, target (passed as dst from ApplyPatch) holds exactly the
// members scratch held, and scratch is left empty so Release on it tears
// down only the now-discarded original contents rather than double-freeing
// the swapped subtree. Only Objects reach here (ApplyPatch/MergePatch both
// require Kind Object), so only the object body needs swapping.
func swapContents(dst, src *Value) {
	dst.o, src.o = src.o, dst.o
}
