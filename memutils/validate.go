package memutils

// Validatable is implemented by heaps and managed blocks, so that DebugValidate can check
// their invariants after every mutation in debug builds
type Validatable interface {
	Validate() error
}
