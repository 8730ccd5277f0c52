package wrapper

import "go.uber.org/zap"

// protect calls fn, converting a panic into fallback. Panics must not
// unwind across the C boundary.
func protect[T any](name string, fallback T, fn func() T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("Recovered panic in entry point",
				zap.String("entry", name),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			result = fallback
		}
	}()
	return fn()
}
