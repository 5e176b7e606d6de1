package board

// The helpers below never write into their input slices. Every document update goes through them
// so that snapshots handed out earlier stay valid and untouched branches keep their backing arrays.

func replaceAt[T any](xs []T, i int, v T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	out[i] = v
	return out
}

func removeAt[T any](xs []T, i int) []T {
	out := make([]T, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}

func insertAt[T any](xs []T, i int, v T) []T {
	out := make([]T, 0, len(xs)+1)
	out = append(out, xs[:i]...)
	out = append(out, v)
	return append(out, xs[i:]...)
}

func appendCopy[T any](xs []T, vs ...T) []T {
	out := make([]T, 0, len(xs)+len(vs))
	out = append(out, xs...)
	return append(out, vs...)
}
