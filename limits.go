package jsonk

// Compile-time limits. Changing any of these requires recompilation — there is
// no runtime config surface, matching a privileged/constrained execution
// environment where the core ships as a fixed build.
const (
	// MaxDepth is the maximum nesting depth the recursive parser, deep copy,
	// and merge-patch engine will descend before failing.
	MaxDepth = 32

	// MaxStringLength is the longest string value (post-unescape) accepted.
	MaxStringLength = 1 << 20 // 1 MiB

	// MaxArraySize is the largest number of elements an array may hold.
	MaxArraySize = 10000

	// MaxObjectMembers is the largest number of members an object may hold.
	MaxObjectMembers = 1000

	// MaxKeyLength is the longest object member key accepted.
	MaxKeyLength = 256

	// MaxTotalMemory bounds the tracked allocations of a single parse call.
	MaxTotalMemory = 64 << 20 // 64 MiB

	// LargeAllocThreshold routes allocations at or below this size through the
	// arena fast path; larger requests fall back to a direct allocation.
	LargeAllocThreshold = 2 << 20 // 2 MiB

	// MaxPathLen bounds a dot-path buffer reserved for path tracking.
	MaxPathLen = 256
)
