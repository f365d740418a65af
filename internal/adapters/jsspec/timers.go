package jsspec

import (
	"errors"
	"slices"

	"github.com/dop251/goja"
)

// timers is a virtual clock behind setTimeout and setInterval. Callbacks run
// in due order when the runtime is otherwise idle; no real time passes.
type timers struct {
	vm      *goja.Runtime
	now     int64
	nextID  int64
	pending []*timer
	onError func(goja.Value)
}

type timer struct {
	id       int64
	due      int64
	interval int64
	fn       goja.Callable
	args     []goja.Value
}

func newTimers(vm *goja.Runtime) *timers {
	return &timers{vm: vm}
}

func (t *timers) install() error {
	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"setTimeout":    t.schedule(false),
		"setInterval":   t.schedule(true),
		"setImmediate":  t.schedule(false),
		"clearTimeout":  t.clear,
		"clearInterval": t.clear,
	} {
		if err := t.vm.Set(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t *timers) schedule(repeat bool) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return t.vm.ToValue(0)
		}

		delay := max(call.Argument(1).ToInteger(), 0)
		var args []goja.Value
		if len(call.Arguments) > 2 {
			args = slices.Clone(call.Arguments[2:])
		}

		t.nextID++
		tm := &timer{id: t.nextID, due: t.now + delay, fn: fn, args: args}
		if repeat {
			tm.interval = max(delay, 1)
		}
		t.pending = append(t.pending, tm)
		return t.vm.ToValue(tm.id)
	}
}

func (t *timers) clear(call goja.FunctionCall) goja.Value {
	id := call.Argument(0).ToInteger()
	t.pending = slices.DeleteFunc(t.pending, func(tm *timer) bool {
		return tm.id == id
	})
	return goja.Undefined()
}

// fireNext runs the earliest due timer and reports whether one existed.
func (t *timers) fireNext() bool {
	if len(t.pending) == 0 {
		return false
	}

	idx := 0
	for i, tm := range t.pending {
		next := t.pending[idx]
		if tm.due < next.due || (tm.due == next.due && tm.id < next.id) {
			idx = i
		}
	}
	tm := t.pending[idx]
	t.pending = slices.Delete(t.pending, idx, idx+1)

	t.now = max(t.now, tm.due)
	if tm.interval > 0 {
		tm.due = t.now + tm.interval
		t.pending = append(t.pending, tm)
	}

	if _, err := tm.fn(goja.Undefined(), tm.args...); err != nil && t.onError != nil {
		var ex *goja.Exception
		if errors.As(err, &ex) {
			t.onError(ex.Value())
		} else {
			t.onError(t.vm.ToValue(err.Error()))
		}
	}
	return true
}
