package crow

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Contexts is the per-request aggregate of every registered stage's context.
// One instance is allocated per in-flight request and discarded with it; it
// is never shared or reused across requests.
//
// The set of context types is fixed when stages are registered on the App.
// Each entry is a pointer to a freshly zero-initialized context value, so a
// lookup from any stage or handler aliases the exact storage the owning
// stage's hooks mutate.
type Contexts struct {
	vals map[reflect.Type]interface{}
}

// Get returns the request's context of type C. The context is shared, not
// copied: mutations through the returned pointer are visible to the stage
// that owns it and to everyone else who looks it up.
//
// Asking for a type that no registered stage declared is a configuration
// bug, not a runtime condition, so Get panics with a diagnostic rather than
// returning a zero value that would silently alias nothing.
func Get[C any](cs *Contexts) *C {
	t := reflect.TypeOf((*C)(nil)).Elem()
	v, ok := cs.vals[t]
	if !ok {
		panic(fmt.Errorf("crow: context type %s has not been registered by "+
			"any stage.  Registered context types: %s", t, cs.typeList()))
	}
	return v.(*C)
}

// Lookup is like Get but reports whether the context type is registered
// instead of panicking. Useful for optional integrations, e.g. a stage that
// annotates the request log only when the logger stage is installed.
func Lookup[C any](cs *Contexts) (*C, bool) {
	v, ok := cs.vals[reflect.TypeOf((*C)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return v.(*C), true
}

func (cs *Contexts) typeList() string {
	if len(cs.vals) == 0 {
		return "<none>"
	}
	names := make([]string, 0, len(cs.vals))
	for t := range cs.vals {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
