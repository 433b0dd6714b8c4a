package util

// Ptr returns a pointer to a copy of v. Optional model parameters use it.
func Ptr[T any](v T) *T {
	return &v
}
