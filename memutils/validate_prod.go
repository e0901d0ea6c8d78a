//go:build !debug_lgc

package memutils

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_lgc build tag is present
func DebugValidate(validatable Validatable) {
}
