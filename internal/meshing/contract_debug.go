//go:build debug

package meshing

// assertContract panics in debug builds so registry/atlas drift is caught
// where it happens.
func assertContract(err error) {
	panic(err)
}
