package input

import (
	"fmt"
	"runtime/debug"
)

// Fault describes a panic recovered inside a hook callback.
type Fault struct {
	Hook  string
	Value any
	Stack []byte
}

func (f Fault) Error() string {
	return fmt.Sprintf("%s hook: %v", f.Hook, f.Value)
}

// Guard wraps hook dispatch so that every invocation re-enters the platform
// chain exactly once: the event is either consumed or passed to next, and a
// panicking handler still results in next being called before the fault is
// reported.
type Guard struct {
	// OnFault receives recovered panics after the event was forwarded.
	OnFault func(Fault)
}

// Dispatch runs decide and then either returns 1 (consume) or the result of
// next (forward).
func (g *Guard) Dispatch(hook string, decide func() Decision, next func() uintptr) uintptr {
	var fault *Fault
	d := func() (d Decision) {
		defer func() {
			if r := recover(); r != nil {
				fault = &Fault{Hook: hook, Value: r, Stack: debug.Stack()}
				d = Forward
			}
		}()
		return decide()
	}()

	var ret uintptr
	if d == Consume {
		ret = 1
	} else {
		ret = next()
	}

	if fault != nil && g != nil && g.OnFault != nil {
		g.OnFault(*fault)
	}
	return ret
}
