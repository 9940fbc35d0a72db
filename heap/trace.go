package heap

// trace gates the debug channel the public wrappers optionally write to.
// Flipping this constant (and rebuilding) is the intended way to watch
// individual Malloc/Free/Realloc calls, the same as the teacher package's
// own trace switch - a real logging dependency would itself perturb the
// allocator's -race/benchmark behavior, so it stays on fmt+os.Stderr. See
// DESIGN.md.
const trace = false
