//go:build !debug

package meshing

// assertContract is a no-op in release builds; the error is returned instead.
func assertContract(error) {}
