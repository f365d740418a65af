package watch_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/internal/engine/watch"
)

type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) record(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) all() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.got
}

func TestDebouncer_CoalescesWithinWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watch.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/p/src/b.js")
		time.Sleep(60 * time.Millisecond)
		d.Add("/p/src/a.js")
		time.Sleep(60 * time.Millisecond)
		d.Add("/p/src/b.js")

		synctest.Wait()
		assert.Empty(t, b.all())

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, b.all(), 1)
		assert.Equal(t, []string{"/p/src/a.js", "/p/src/b.js"}, b.all()[0])
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watch.NewDebouncer(50*time.Millisecond, b.record)

		d.Add("/p/one.js")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/p/two.js")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/p/one.js"}, {"/p/two.js"}}, b.all())
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watch.NewDebouncer(50*time.Millisecond, b.record)

		d.Add("/p/one.js")
		d.Stop()
		d.Add("/p/two.js")

		time.Sleep(time.Second)
		synctest.Wait()

		assert.Empty(t, b.all())
	})
}
