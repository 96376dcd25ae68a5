//go:build arm64 && gc && !purego

package polyval

import "testing"

func disableAsm(t *testing.T) {
	old := haveAsm
	t.Cleanup(func() {
		haveAsm = old
	})
	haveAsm = false
}

// runTests runs fn once under whichever CPU-feature state the machine
// actually has, and once more with haveAsm forced off. On arm64 both
// runs exercise the same Karatsuba combine (see polyval_arm64.go), so
// this mainly protects against someone giving the two paths different
// math in the future.
func runTests(t *testing.T, fn func(t *testing.T)) {
	if haveAsm {
		t.Run("pmull", fn)
	}
	t.Run("generic", func(t *testing.T) {
		disableAsm(t)
		fn(t)
	})
}
