package reso

import (
	"sync"
	"sync/atomic"
)

// The bootstrap hook performs all registrations before the first
// resolution. The first resolution attempt on any container runs the
// installed entry point exactly once; concurrent first resolutions block
// until it has completed. The entry point slot is atomic so installation
// may race the first resolution without tearing.
var boot = struct {
	once *sync.Once
	fn   atomic.Pointer[func()]
}{once: new(sync.Once)}

// Bootstrap installs the registration entry point. It must be installed
// before the first resolution anywhere in the process. The entry point
// must only register: resolving from inside it deadlocks.
func Bootstrap(fn func()) {
	boot.fn.Store(&fn)
}

func ensureBootstrapped() {
	boot.once.Do(func() {
		if fn := boot.fn.Load(); fn != nil {
			(*fn)()
		}
	})
}
