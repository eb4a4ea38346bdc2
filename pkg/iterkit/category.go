package iterkit

import (
	"reflect"
	"sync"

	"go.llib.dev/conceptkit/pkg/reflectkit"
	"go.llib.dev/frameless/pkg/errorkit"
)

// Iterator category tags.
// A refined category is assignable to every category it refines,
// thus a random access iterator is usable where an input iterator is required.
type (
	InputIteratorTag interface{ inputIterator() }

	OutputIteratorTag interface{ outputIterator() }

	ForwardIteratorTag interface {
		InputIteratorTag
		forwardIterator()
	}

	BidirectionalIteratorTag interface {
		ForwardIteratorTag
		bidirectionalIterator()
	}

	RandomAccessIteratorTag interface {
		BidirectionalIteratorTag
		randomAccessIterator()
	}
)

// Concrete category values, returned by the IteratorCategory method of iterator types.
type (
	InputCategory         struct{}
	OutputCategory        struct{}
	ForwardCategory       struct{}
	BidirectionalCategory struct{}
	RandomAccessCategory  struct{}
)

func (InputCategory) inputIterator() {}

func (OutputCategory) outputIterator() {}

func (ForwardCategory) inputIterator()   {}
func (ForwardCategory) forwardIterator() {}

func (BidirectionalCategory) inputIterator()         {}
func (BidirectionalCategory) forwardIterator()       {}
func (BidirectionalCategory) bidirectionalIterator() {}

func (RandomAccessCategory) inputIterator()         {}
func (RandomAccessCategory) forwardIterator()       {}
func (RandomAccessCategory) bidirectionalIterator() {}
func (RandomAccessCategory) randomAccessIterator()  {}

const (
	ErrLateRegistration errorkit.Error = "category registered after it was observed"
	ErrNotCategory      errorkit.Error = "not an iterator category"
)

var (
	inputTagType  = reflectkit.TypeOf[InputIteratorTag]()
	outputTagType = reflectkit.TypeOf[OutputIteratorTag]()
)

var categories = struct {
	mutex    sync.Mutex
	byType   map[reflect.Type]reflect.Type
	observed map[reflect.Type]struct{}
}{
	byType:   map[reflect.Type]reflect.Type{},
	observed: map[reflect.Type]struct{}{},
}

// RegisterCategory declares the iterator category of a type that cannot declare it through an IteratorCategory method,
// for example a type from a foreign package.
// It must happen before the category of the type is first looked up.
func RegisterCategory[Iter, Category any]() error {
	return registerCategory(reflectkit.TypeOf[Iter](), reflectkit.TypeOf[Category]())
}

func registerCategory(iter, category reflect.Type) error {
	if !category.AssignableTo(inputTagType) && !category.AssignableTo(outputTagType) {
		return ErrNotCategory.F("%s", category)
	}
	categories.mutex.Lock()
	defer categories.mutex.Unlock()
	if _, ok := categories.observed[iter]; ok {
		return ErrLateRegistration.F("%s", iter)
	}
	categories.byType[iter] = category
	return nil
}

// CategoryOf looks up the iterator category of a type:
// a registered category wins, pointers are random access iterators,
// otherwise the result type of the type's IteratorCategory method is used.
func CategoryOf(iter reflect.Type) (reflect.Type, bool) {
	if iter == nil {
		return nil, false
	}
	categories.mutex.Lock()
	categories.observed[iter] = struct{}{}
	category, ok := categories.byType[iter]
	categories.mutex.Unlock()
	if ok {
		return category, true
	}
	if reflectkit.IsPointer(iter) {
		return reflectkit.TypeOf[RandomAccessCategory](), true
	}
	mt, ok := reflectkit.LookupMethod(iter, "IteratorCategory", false)
	if !ok || mt.NumIn() != 0 || mt.NumOut() != 1 {
		return nil, false
	}
	return mt.Out(0), true
}
