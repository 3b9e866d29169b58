package entity

import "runtime"

// Config carries the daemon options resolved by the CLI layer. It is built
// once at startup and never mutated afterwards; every component receives it
// by value.
type Config struct {
	// LockFD is an inherited file descriptor holding the parent's advisory
	// lock. Negative disables the lock-based liveness check.
	LockFD int

	// SigwinchPID is the process to poke with SIGWINCH while idle. Negative
	// disables the signal-based liveness check.
	SigwinchPID int

	// NumThreads is the number of workers used to scan a working tree.
	// Zero or negative resolves to the number of logical CPUs.
	NumThreads int

	// DirtyMaxIndexSize caps the index size beyond which the working-tree
	// scan is skipped and unstaged/untracked degrade to Unknown. Negative
	// means unbounded.
	DirtyMaxIndexSize int64
}

// DefaultConfig mirrors the daemon's flag defaults: both liveness checks
// disabled, one worker per CPU, no index-size cap.
func DefaultConfig() Config {
	return Config{
		LockFD:            -1,
		SigwinchPID:       -1,
		NumThreads:        0,
		DirtyMaxIndexSize: -1,
	}
}

// WorkerCount resolves NumThreads to a concrete worker count, clamped to
// at least one.
func (c Config) WorkerCount() int {
	if c.NumThreads > 0 {
		return c.NumThreads
	}
	if n := runtime.NumCPU(); n > 1 {
		return n
	}
	return 1
}

// ScanBounded reports whether the working-tree scan must be skipped for an
// index holding entryCount entries.
func (c Config) ScanBounded(entryCount int) bool {
	return c.DirtyMaxIndexSize >= 0 && int64(entryCount) > c.DirtyMaxIndexSize
}
