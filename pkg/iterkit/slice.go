package iterkit

// SliceIterator is a position within a slice.
// Begin and End of the same slice delimit the half-open range of its elements.
type SliceIterator[T any] struct {
	slice []T
	index int
}

func Begin[T any](s []T) SliceIterator[T] { return SliceIterator[T]{slice: s} }

func End[T any](s []T) SliceIterator[T] { return SliceIterator[T]{slice: s, index: len(s)} }

// Deref returns the element at the current position.
func (it SliceIterator[T]) Deref() T { return it.slice[it.index] }

// Arrow returns a pointer to the element at the current position.
func (it SliceIterator[T]) Arrow() *T { return &it.slice[it.index] }

// Inc moves to the next position.
func (it *SliceIterator[T]) Inc() *SliceIterator[T] {
	it.index++
	return it
}

// PostInc moves to the next position and returns the previous one.
func (it *SliceIterator[T]) PostInc() SliceIterator[T] {
	prev := *it
	it.index++
	return prev
}

// Equal reports whether both iterators point to the same position of the same slice.
func (it SliceIterator[T]) Equal(oth SliceIterator[T]) bool {
	return it.index == oth.index && sameBacking(it.slice, oth.slice)
}

func sameBacking[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// The methods below declare the associated types of the iterator.
// Their return values carry no information, only their result types do.

func (SliceIterator[T]) ValueType() (_ T) { return }

func (SliceIterator[T]) Reference() (_ T) { return }

func (SliceIterator[T]) Pointer() (_ *T) { return }

func (SliceIterator[T]) IteratorCategory() RandomAccessCategory { return RandomAccessCategory{} }
