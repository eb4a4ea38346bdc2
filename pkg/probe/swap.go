package probe

import (
	"reflect"
	"sync"

	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/conceptkit/pkg/reflectkit"
	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	ErrAmbiguous        errorkit.Error = "ambiguous swap"
	ErrLateRegistration errorkit.Error = "swap registered after it was observed"
	ErrNotSwappable     errorkit.Error = "values are not swappable"
)

type swapKey struct{ T, U reflect.Type }

var swaps = struct {
	mutex    sync.Mutex
	funcs    map[swapKey]any
	observed map[swapKey]struct{}
}{
	funcs:    map[swapKey]any{},
	observed: map[swapKey]struct{}{},
}

// RegisterSwap declares how the values of two variables of T and U are exchanged,
// for types that cannot declare a Swap method, such as types of a foreign package.
// It must happen before the pair is first probed.
func RegisterSwap[T, U any](fn func(*T, *U)) error {
	key := swapKey{T: reflectkit.TypeOf[T](), U: reflectkit.TypeOf[U]()}
	swaps.mutex.Lock()
	defer swaps.mutex.Unlock()
	if _, ok := swaps.observed[key]; ok {
		return ErrLateRegistration.F("%s, %s", key.T, key.U)
	}
	swaps.funcs[key] = fn
	return nil
}

func lookupSwap(T, U reflect.Type) (any, bool) {
	key := swapKey{T: T, U: U}
	swaps.mutex.Lock()
	defer swaps.mutex.Unlock()
	swaps.observed[key] = struct{}{}
	fn, ok := swaps.funcs[key]
	return fn, ok
}

// SwapWith probes exchanging the values of an a of type T and a b of type U.
// Candidates are a registered swap function, a Swap method of T, and the tuple assignment `a, b = b, a`.
// The registered function and the method are equally specific, having both is a hard error.
var SwapWith = detect.Op2("adl.swap_with", func(T, U detect.Type) (detect.Type, error) {
	_, registered := lookupSwap(T.Reflect(), U.Reflect())
	registered = registered && T.Addressable() && U.Addressable()
	member, err := call(T, "Swap", U)
	switch hasMember := err == nil; {
	case registered && hasMember:
		return detect.Type{}, ErrAmbiguous.F("%s and %s have both a registered swap and a Swap method", T, U)
	case registered:
		return detect.Void, nil
	case hasMember:
		return member, nil
	}
	if !T.Addressable() || !U.Addressable() {
		return detect.Type{}, detect.Fail("swapping %s with %s needs two variables", T, U)
	}
	if !detect.CopyAssignable(T) || !detect.CopyAssignable(U) {
		return detect.Type{}, detect.Fail("%s or %s is not copy assignable", T, U)
	}
	if !T.Reflect().AssignableTo(U.Reflect()) || !U.Reflect().AssignableTo(T.Reflect()) {
		return detect.Type{}, detect.Fail("%s and %s are not assignable to each other", T, U)
	}
	return detect.Void, nil
})

// Swap exchanges the values behind a and b.
// It picks the same candidate as SwapWith does for two variables of T:
// the registered swap function, the Swap method of T whatever it returns, or the tuple assignment.
func Swap[T any](a, b *T) error {
	typ := detect.TypeOf[T]().Ref()
	r, err := detect.Detect(SwapWith, typ, typ)
	if err != nil {
		return err
	}
	if !r.OK {
		return ErrNotSwappable.Wrap(r.Reason)
	}
	if fn, ok := lookupSwap(typ.Reflect(), typ.Reflect()); ok {
		fn.(func(*T, *T))(a, b)
		return nil
	}
	if m := swapMethod(a); m.IsValid() {
		m.Call([]reflect.Value{swapArg(m.Type().In(0), b)})
		return nil
	}
	*a, *b = *b, *a
	return nil
}

func swapMethod[T any](a *T) reflect.Value {
	recv := reflect.ValueOf(a)
	if k := reflectkit.TypeOf[T]().Kind(); k == reflect.Pointer || k == reflect.Interface {
		recv = recv.Elem()
	}
	return recv.MethodByName("Swap")
}

func swapArg[T any](param reflect.Type, b *T) reflect.Value {
	if reflectkit.TypeOf[T]().AssignableTo(param) {
		return reflect.ValueOf(b).Elem()
	}
	return reflect.ValueOf(b)
}
