package heap

// Option configures an Allocator at construction time.
type Option func(*Allocator)

// WithChunkSize sets CHUNKSIZE, the minimum amount requested from the
// region provider on a find-fit miss (spec §4.4 step 4). Rounded up to the
// double-word alignment; non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.chunkSize = alignUp16(n)
		}
	}
}

// WithPreExtend requests CHUNKSIZE bytes immediately in New, rather than
// lazily on the first allocation miss. Spec §4.1 step 6 leaves this
// optional; off by default, matching the explicit-free-list variant the
// teacher package's allocation style is grounded on.
func WithPreExtend(enabled bool) Option {
	return func(a *Allocator) { a.preExtend = enabled }
}
