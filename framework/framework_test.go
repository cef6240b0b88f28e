package framework

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind string
	id   string
}

type recordingCheckLogger struct {
	events []recordedEvent
	debug  map[string]CapturedOutput
}

func (r *recordingCheckLogger) CheckStarted(id CheckID) {
	r.events = append(r.events, recordedEvent{"started", id.String()})
}

func (r *recordingCheckLogger) CheckError(id CheckID, err error) {
	r.events = append(r.events, recordedEvent{"error", id.String()})
}

func (r *recordingCheckLogger) CheckFinished(id CheckID, failed bool, debugOutput CapturedOutput) {
	kind := "passed"
	if failed {
		kind = "failed"
	}
	r.events = append(r.events, recordedEvent{kind, id.String()})
	if r.debug == nil {
		r.debug = make(map[string]CapturedOutput)
	}
	r.debug[id.String()] = debugOutput
}

func (r *recordingCheckLogger) CheckSkipped(id CheckID, reason string) {
	r.events = append(r.events, recordedEvent{"skipped", id.String()})
}

func TestRunRecordsResults(t *testing.T) {
	logger := &recordingCheckLogger{}
	results := Run(RunConfig{CheckLogger: logger}, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Debug("hello %d", 1)
			c.Run("b", func(c *Context) {})
		})
		c.Run("fails", func(c *Context) {
			c.Errorf("bad %s", "thing")
			c.Errorf("worse")
		})
		c.Run("fails now", func(c *Context) {
			require.True(c, false)
			c.Errorf("not reached")
		})
		c.Run("panics", func(c *Context) {
			panic("boom")
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Checks, 5)
	require.Len(t, results.Failures, 3)
	assert.Equal(t, "fails", results.Failures[0].CheckID.String())
	assert.Len(t, results.Failures[0].Errors, 2)
	assert.Equal(t, "fails now", results.Failures[1].CheckID.String())
	assert.Len(t, results.Failures[1].Errors, 1)
	assert.Contains(t, results.Failures[2].Errors[0].Error(), "boom")

	assert.Equal(t, recordedEvent{"started", "a"}, logger.events[0])
	assert.Equal(t, recordedEvent{"started", "a/b"}, logger.events[1])
	assert.Equal(t, recordedEvent{"passed", "a/b"}, logger.events[2])
	assert.Equal(t, recordedEvent{"passed", "a"}, logger.events[3])
	require.Len(t, logger.debug["a"], 1)
	assert.Equal(t, "hello 1", logger.debug["a"][0].Message)
}

func TestRunSkipsAndCapabilities(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^excluded$"))

	ranCleanup := false
	results := Run(RunConfig{Filter: filters.AsFilter, Capabilities: Capabilities{"have"}}, func(c *Context) {
		c.Run("excluded", func(c *Context) { c.Errorf("should not run") })
		c.Run("needs missing", func(c *Context) {
			c.Defer(func() { ranCleanup = true })
			c.RequireCapability("missing")
			c.Errorf("should not get here")
		})
		c.Run("needs have", func(c *Context) {
			c.RequireCapability("have")
		})
	})

	assert.True(t, results.OK())
	assert.True(t, ranCleanup)
	assert.Len(t, results.Checks, 1)
	assert.Len(t, results.Skipped, 2)
}

func TestDeferRunsInReverseOrder(t *testing.T) {
	var order []int
	Run(RunConfig{}, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Defer(func() { order = append(order, 1) })
			c.Defer(func() { order = append(order, 2) })
		})
	})
	assert.Equal(t, []int{2, 1}, order)
}

func TestRegexFiltersMatchByLevel(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("request/path"))

	assert.True(t, filters.AsFilter(CheckID{Path: []string{"request"}}))
	assert.True(t, filters.AsFilter(CheckID{Path: []string{"request", "path derivation"}}))
	assert.True(t, filters.AsFilter(CheckID{Path: []string{"request", "path derivation", "deeper"}}))
	assert.False(t, filters.AsFilter(CheckID{Path: []string{"request", "lookup"}}))
	assert.False(t, filters.AsFilter(CheckID{Path: []string{"output"}}))

	assert.Error(t, filters.MustMatch.Set("("))
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Results{Checks: []CheckResult{{}}})
	assert.Contains(t, buf.String(), "All checks passed (1 run, 0 skipped)")

	buf.Reset()
	failure := CheckResult{CheckID: CheckID{Path: []string{"a", "b"}}, Errors: []error{errors.New("line1\nline2")}}
	PrintResults(&buf, Results{Checks: []CheckResult{failure}, Failures: []CheckResult{failure}})
	assert.Contains(t, buf.String(), "FAILED: 1 of 1 checks")
	assert.Contains(t, buf.String(), "  a/b\n    line1\n    line2\n")
}

func TestCapturedOutputDump(t *testing.T) {
	var logger CapturingLogger
	logger.Printf("first")
	logger.Printf("multi\nline")

	var buf bytes.Buffer
	logger.Output().Dump(&buf, "> ")
	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "first")
	assert.Contains(t, string(lines[1]), "multi")
	assert.Equal(t, "> ", string(lines[2][:2]))
	assert.Contains(t, string(lines[2]), "line")
}

func TestPrintFilterDescription(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("output"))

	var buf bytes.Buffer
	PrintFilterDescription(&buf, filters, []string{"a", "b"}, Capabilities{"a"})
	assert.Contains(t, buf.String(), `skip any not matching "output"`)
	assert.Contains(t, buf.String(), "capabilities:\n  b\n")
}
