package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// RunConfig controls which checks run and where their progress is reported.
type RunConfig struct {
	Filter       Filter
	CheckLogger  CheckLogger
	Capabilities Capabilities
}

type environment struct {
	config  RunConfig
	results Results
}

// Context is the scope of a single check.
type Context struct {
	env         *environment
	id          CheckID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run runs the root action and returns the results of every check it started.
func Run(config RunConfig, action func(*Context)) Results {
	if config.CheckLogger == nil {
		config.CheckLogger = nullCheckLogger{}
	}
	env := &environment{config: config}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				c.runCleanups()
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("check failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in check: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.config.CheckLogger.CheckError(c.id, addError)
			}
		}
		c.runCleanups()
		if c.skipped || len(c.id.Path) == 0 {
			return
		}
		result := CheckResult{CheckID: c.id, Errors: c.errors}
		c.env.results.Checks = append(c.env.results.Checks, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) runCleanups() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
}

func (c *Context) ID() CheckID {
	return c.id
}

// Run starts a sub-check. It returns after the sub-check has finished, failed or been skipped.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

	c.env.config.CheckLogger.CheckStarted(id)
	if c.env.config.Filter != nil && !c.env.config.Filter(id) {
		c.env.results.Skipped = append(c.env.results.Skipped, CheckResult{CheckID: id, Skipped: true})
		c.env.config.CheckLogger.CheckSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.results.Skipped = append(c.env.results.Skipped, CheckResult{CheckID: id, Skipped: true})
		c.env.config.CheckLogger.CheckSkipped(id, c1.skipReason)
	} else {
		c.env.config.CheckLogger.CheckFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the check. It is what testify's assert calls.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.config.CheckLogger.CheckError(c.id, reformatError(err))
}

// FailNow stops the check. It is what testify's require calls after Errorf.
func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// RequireCapability skips the check unless the implementation under test has the capability.
func (c *Context) RequireCapability(name string) {
	if !c.env.config.Capabilities.Has(name) {
		c.SkipWithReason(fmt.Sprintf("implementation does not have capability %q", name))
	}
}

func (c *Context) Capabilities() Capabilities {
	return c.env.config.Capabilities
}

// Defer schedules a function to run when the check ends, in last-in first-out order.
func (c *Context) Defer(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// testify puts a blank line and a "Error Trace:" block in front of its messages, which is
// noise outside of go test.
func reformatError(err error) error {
	s := err.Error()
	if i := strings.Index(s, "Error:"); i >= 0 {
		s = s[i:]
	}
	return errors.New(strings.TrimSpace(s))
}
