package internal

// ContextValue returns the value stored under key, or the zero value of T
// when the key is missing or holds a different type.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}
