// Package jsspec runs jasmine-style spec files in an embedded JavaScript runtime.
package jsspec

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dop251/goja"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed harness.js
var harnessSource string

// Harness returns the harness script served to browsers.
func Harness() string {
	return harnessSource
}

// maxTimerFires bounds the timer callbacks one waiting hook or spec may run
// before it is stalled, so intervals that are never cleared cannot keep a run
// alive.
const maxTimerFires = 10000

var _ ports.SpecRunner = (*Runner)(nil)

// Runner implements ports.SpecRunner with goja.
type Runner struct {
	readFile func(string) ([]byte, error)
}

// NewRunner creates a new Runner reading spec files from disk.
func NewRunner() *Runner {
	return &Runner{readFile: os.ReadFile}
}

type jsResult struct {
	Suite       string   `json:"suite"`
	Description string   `json:"description"`
	FullName    string   `json:"fullName"`
	Status      string   `json:"status"`
	Failures    []string `json:"failures"`
	Duration    int64    `json:"duration"`
}

// Run loads files in order into one runtime and runs every declared spec.
func (r *Runner) Run(ctx context.Context, files []string, out io.Writer) (*domain.SpecReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	clock := newTimers(vm)
	if err := installGlobals(vm, out, clock); err != nil {
		return nil, err
	}

	if _, err := vm.RunScript("harness.js", harnessSource); err != nil {
		return nil, runError(ctx, err)
	}

	report := &domain.SpecReport{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res, ok := r.load(vm, file); !ok {
			report.Add(res)
		}
	}

	api := vm.Get("__ybuild").ToObject(vm)
	run, _ := goja.AssertFunction(api.Get("run"))
	stall, _ := goja.AssertFunction(api.Get("stall"))
	settled, _ := goja.AssertFunction(api.Get("settled"))
	uncaught, _ := goja.AssertFunction(api.Get("uncaught"))
	clock.onError = func(v goja.Value) {
		_, _ = uncaught(goja.Undefined(), v)
	}

	onResult := func(call goja.FunctionCall) goja.Value {
		var res jsResult
		if err := vm.ExportTo(call.Argument(0), &res); err == nil {
			report.Add(res.toDomain())
		}
		return goja.Undefined()
	}

	v, err := run(goja.Undefined(), vm.ToValue(onResult))
	if err != nil {
		return nil, runError(ctx, err)
	}
	promise, ok := v.Export().(*goja.Promise)
	if !ok {
		return nil, zerr.With(domain.ErrSpecLoadFailed, "reason", "harness did not return a promise")
	}

	fires, seen := 0, int64(-1)
	for promise.State() == goja.PromiseStatePending {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count, err := settled(goja.Undefined())
		if err != nil {
			return nil, runError(ctx, err)
		}
		if n := count.ToInteger(); n != seen {
			seen = n
			fires = 0
		}
		if fires < maxTimerFires && clock.fireNext() {
			fires++
			continue
		}
		waiting, err := stall(goja.Undefined(), vm.ToValue("Spec did not settle"))
		if err != nil {
			return nil, runError(ctx, err)
		}
		if !waiting.ToBoolean() {
			return nil, zerr.With(domain.ErrSpecLoadFailed, "reason", "spec run stopped without settling")
		}
	}

	if promise.State() == goja.PromiseStateRejected {
		return nil, zerr.With(domain.ErrSpecLoadFailed, "reason", promise.Result().String())
	}

	return report, nil
}

// load evaluates one file in the shared global scope. A file that cannot be
// read or throws is returned as a failed result.
func (r *Runner) load(vm *goja.Runtime, file string) (domain.SpecResult, bool) {
	failed := domain.SpecResult{
		Suite:       file,
		Description: "load",
		FullName:    file,
		Status:      domain.SpecFailed,
	}

	src, err := r.readFile(file)
	if err != nil {
		failed.Failures = []string{err.Error()}
		return failed, false
	}

	if _, err := vm.RunScript(file, string(src)); err != nil {
		failed.Failures = []string{exceptionMessage(err)}
		return failed, false
	}
	return domain.SpecResult{}, true
}

func installGlobals(vm *goja.Runtime, out io.Writer, clock *timers) error {
	global := vm.GlobalObject()
	for _, alias := range []string{"window", "global", "self"} {
		if err := vm.Set(alias, global); err != nil {
			return err
		}
	}

	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		if err := console.Set(level, consoleFunc(out)); err != nil {
			return err
		}
	}
	if err := vm.Set("console", console); err != nil {
		return err
	}

	return clock.install()
}

func consoleFunc(out io.Writer) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		_, _ = fmt.Fprintln(out, strings.Join(parts, " "))
		return goja.Undefined()
	}
}

func (res jsResult) toDomain() domain.SpecResult {
	return domain.SpecResult{
		Suite:       res.Suite,
		Description: res.Description,
		FullName:    res.FullName,
		Status:      domain.SpecStatus(res.Status),
		Failures:    res.Failures,
		Duration:    time.Duration(res.Duration) * time.Millisecond,
	}
}

func exceptionMessage(err error) string {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return ex.Error()
	}
	return err.Error()
}

func runError(ctx context.Context, err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) && ctx.Err() != nil {
		return ctx.Err()
	}
	return zerr.With(zerr.Wrap(err, domain.ErrSpecLoadFailed.Error()), "reason", exceptionMessage(err))
}
