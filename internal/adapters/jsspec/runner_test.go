package jsspec_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ybuild/internal/adapters/jsspec"
	"go.trai.ch/ybuild/internal/core/domain"
)

func writeSpecs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func runSpecs(t *testing.T, dir string, names ...string) (*domain.SpecReport, string) {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}

	var out bytes.Buffer
	report, err := jsspec.NewRunner().Run(context.Background(), paths, &out)
	require.NoError(t, err)
	return report, out.String()
}

func statuses(report *domain.SpecReport) map[string]domain.SpecStatus {
	m := make(map[string]domain.SpecStatus, len(report.Results))
	for _, res := range report.Results {
		m[res.FullName] = res.Status
	}
	return m
}

func find(t *testing.T, report *domain.SpecReport, fullName string) domain.SpecResult {
	t.Helper()
	for _, res := range report.Results {
		if res.FullName == fullName {
			return res
		}
	}
	t.Fatalf("no result named %q", fullName)
	return domain.SpecResult{}
}

func TestRunner_Outcomes(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"WebRTC.spec.js": `
describe('WebRTC', function () {
  var calls
  beforeEach(function () { calls = [] })
  it('adds', function () { expect(1 + 1).toBe(2) })
  it('fails', function () { expect([1, 2]).toEqual([1, 3]) })
  xit('is skipped', function () {})
  it('is pending', function () { pending('later') })
  describe('nested', function () {
    it('sees outer hooks', function () { calls.push(1); expect(calls).toEqual([1]) })
  })
})
`,
	})

	report, _ := runSpecs(t, dir, "WebRTC.spec.js")

	assert.Equal(t, []string{
		"WebRTC adds",
		"WebRTC fails",
		"WebRTC is skipped",
		"WebRTC is pending",
		"WebRTC nested sees outer hooks",
	}, fullNames(report))

	assert.Equal(t, map[string]domain.SpecStatus{
		"WebRTC adds":                    domain.SpecPassed,
		"WebRTC fails":                   domain.SpecFailed,
		"WebRTC is skipped":              domain.SpecPending,
		"WebRTC is pending":              domain.SpecPending,
		"WebRTC nested sees outer hooks": domain.SpecPassed,
	}, statuses(report))

	failed := find(t, report, "WebRTC fails")
	assert.Equal(t, []string{"Expected [1,2] to equal [1,3]."}, failed.Failures)
	assert.Equal(t, "WebRTC", failed.Suite)
	assert.Equal(t, "fails", failed.Description)
	assert.True(t, report.Failed())
}

func TestRunner_Async(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"async.spec.js": `
describe('async', function () {
  it('calls done from a timer', function (done) {
    setTimeout(function () { expect(true).toBeTruthy(); done() }, 100)
  })
  it('returns a promise', function () {
    return Promise.resolve(3).then(function (v) { expect(v).toBe(3) })
  })
  it('rejects', function () { return Promise.reject(new Error('nope')) })
  it('never settles', function (done) {})
  it('runs after a stalled spec', function () { expect(null).toBeNull() })
  it('fails through done.fail', function (done) { done.fail('broken') })
})
`,
	})

	report, _ := runSpecs(t, dir, "async.spec.js")

	assert.Equal(t, map[string]domain.SpecStatus{
		"async calls done from a timer":   domain.SpecPassed,
		"async returns a promise":         domain.SpecPassed,
		"async rejects":                   domain.SpecFailed,
		"async never settles":             domain.SpecFailed,
		"async runs after a stalled spec": domain.SpecPassed,
		"async fails through done.fail":   domain.SpecFailed,
	}, statuses(report))

	assert.Equal(t, []string{"Error: nope"}, find(t, report, "async rejects").Failures)
	assert.Equal(t, []string{"Error: Spec did not settle"}, find(t, report, "async never settles").Failures)
	assert.Equal(t, []string{"Error: broken"}, find(t, report, "async fails through done.fail").Failures)
}

func TestRunner_Timers(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"timers.spec.js": `
describe('timers', function () {
  it('fires in due order', function (done) {
    var order = []
    setTimeout(function () { order.push('late') }, 50)
    setTimeout(function () { order.push('early') }, 10)
    var n = 0
    var id = setInterval(function () {
      n++
      if (n === 3) {
        clearInterval(id)
        expect(order).toEqual(['early', 'late'])
        done()
      }
    }, 20)
  })
  it('cancels timeouts', function (done) {
    var id = setTimeout(function () { fail('should not run') }, 1)
    clearTimeout(id)
    setTimeout(done, 5)
  })
  it('reports errors thrown in timers', function (done) {
    setTimeout(function () { throw new Error('from timer') }, 1)
  })
})
`,
	})

	report, _ := runSpecs(t, dir, "timers.spec.js")

	assert.Equal(t, domain.SpecPassed, find(t, report, "timers fires in due order").Status)
	assert.Equal(t, domain.SpecPassed, find(t, report, "timers cancels timeouts").Status)
	errored := find(t, report, "timers reports errors thrown in timers")
	assert.Equal(t, domain.SpecFailed, errored.Status)
	assert.Equal(t, []string{"Error: from timer"}, errored.Failures)
}

func TestRunner_TimerBudgetIsPerSpec(t *testing.T) {
	// 120 specs with 100 chained timeouts each exceed the budget of a single
	// spec only when added together.
	dir := writeSpecs(t, map[string]string{
		"poll.spec.js": `
describe('poll', function () {
  for (var i = 0; i < 120; i++) {
    it('spec ' + i, function (done) {
      var n = 0
      function tick () {
        n++
        if (n === 100) {
          done()
          return
        }
        setTimeout(tick, 1)
      }
      setTimeout(tick, 1)
    })
  }
})
`,
	})

	report, _ := runSpecs(t, dir, "poll.spec.js")

	assert.Len(t, report.Results, 120)
	assert.Equal(t, 120, report.Count(domain.SpecPassed))
	assert.False(t, report.Failed())
}

func TestRunner_Matchers(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"matchers.spec.js": `
describe('matchers', function () {
  it('all pass', function () {
    expect({a: [1, {b: 2}]}).toEqual({a: [1, {b: 2}]})
    expect({a: 1}).not.toEqual({a: 2})
    expect(0).toBeFalsy()
    expect('x').toBeDefined()
    expect(undefined).toBeUndefined()
    expect('y-webrtc').toContain('webrtc')
    expect([1, [2]]).toContain([2])
    expect('v0.1.1').toMatch(/^v\d+/)
    expect('abc').toMatch('b')
    expect(2).toBeGreaterThan(1)
    expect(1).toBeLessThan(2)
    expect(0.1 + 0.2).toBeCloseTo(0.3)
    expect(function () { throw new Error('boom') }).toThrow()
    expect(function () { throw new Error('boom') }).toThrow(new Error('boom'))
    expect(function () {}).not.toThrow()
    expect(NaN).toEqual(NaN)
  })
  it('collects every failure', function () {
    expect(1).toBe(2)
    expect('a').not.toBe('a')
    fail('explicit')
  })
})
`,
	})

	report, _ := runSpecs(t, dir, "matchers.spec.js")

	assert.Equal(t, domain.SpecPassed, find(t, report, "matchers all pass").Status)
	assert.Equal(t, []string{
		"Expected 1 to be 2.",
		"Expected 'a' not to be 'a'.",
		"Failed: explicit",
	}, find(t, report, "matchers collects every failure").Failures)
}

func TestRunner_SharedGlobalScope(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"WebRTC.js":      "window.Y = { WebRTC: function () { return 'connector' } }\nvar loadedAs = typeof global\n",
		"WebRTC.spec.js": "describe('Y', function () { it('sees the library', function () { expect(Y.WebRTC()).toBe('connector'); expect(loadedAs).toBe('object') }) })\n",
	})

	report, _ := runSpecs(t, dir, "WebRTC.js", "WebRTC.spec.js")

	require.Len(t, report.Results, 1)
	assert.Equal(t, domain.SpecPassed, report.Results[0].Status)
}

func TestRunner_Console(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"log.spec.js": "console.log('hello', 42)\ndescribe('log', function () { it('warns', function () { console.warn('careful') }) })\n",
	})

	_, out := runSpecs(t, dir, "log.spec.js")
	assert.Equal(t, "hello 42\ncareful\n", out)
}

func TestRunner_LoadFailures(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"broken.spec.js": "describe('broken', function () {\n",
		"ok.spec.js":     "describe('ok', function () { it('runs', function () {}) })\n",
	})

	report, _ := runSpecs(t, dir, "missing.spec.js", "broken.spec.js", "ok.spec.js")

	require.Len(t, report.Results, 3)
	assert.Equal(t, domain.SpecFailed, report.Results[0].Status)
	assert.Equal(t, filepath.Join(dir, "missing.spec.js"), report.Results[0].FullName)
	assert.Equal(t, domain.SpecFailed, report.Results[1].Status)
	assert.NotEmpty(t, report.Results[1].Failures)
	assert.Equal(t, "ok runs", report.Results[2].FullName)
	assert.Equal(t, domain.SpecPassed, report.Results[2].Status)
}

func TestRunner_BeforeAllFailure(t *testing.T) {
	dir := writeSpecs(t, map[string]string{
		"hooks.spec.js": `
describe('hooks', function () {
  beforeAll(function () { throw new Error('setup') })
  it('a', function () {})
  it('b', function () {})
})
describe('after', function () {
  afterAll(function () { throw new Error('teardown') })
  it('c', function () {})
})
`,
	})

	report, _ := runSpecs(t, dir, "hooks.spec.js")

	assert.Equal(t, []string{"beforeAll: Error: setup"}, find(t, report, "hooks a").Failures)
	assert.Equal(t, domain.SpecFailed, find(t, report, "hooks b").Status)
	assert.Equal(t, domain.SpecPassed, find(t, report, "after c").Status)
	assert.Equal(t, []string{"Error: teardown"}, find(t, report, "after afterAll").Failures)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := jsspec.NewRunner().Run(ctx, nil, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteReport(t *testing.T) {
	report := &domain.SpecReport{}
	report.Add(domain.SpecResult{FullName: "WebRTC adds", Status: domain.SpecPassed})
	report.Add(domain.SpecResult{FullName: "WebRTC fails", Status: domain.SpecFailed, Failures: []string{"Expected 1 to be 2."}})
	report.Add(domain.SpecResult{FullName: "WebRTC later", Status: domain.SpecPending})

	var buf bytes.Buffer
	jsspec.WriteReport(&buf, report)

	assert.Equal(t, strings.Join([]string{
		"✓ WebRTC adds",
		"✗ WebRTC fails",
		"    Expected 1 to be 2.",
		"- WebRTC later (pending)",
		"",
		"3 specs, 1 failures, 1 pending",
		"",
	}, "\n"), buf.String())
}

func TestHarness(t *testing.T) {
	assert.Contains(t, jsspec.Harness(), "__ybuild")
}

func fullNames(report *domain.SpecReport) []string {
	names := make([]string, len(report.Results))
	for i, res := range report.Results {
		names[i] = res.FullName
	}
	return names
}
