package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/launchdarkly/fake-http-context/framework"
)

type commandParams struct {
	filters     framework.RegexFilters
	fixturePath string
	lookupKeys  []string
	debug       bool
	debugAll    bool
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func (c *commandParams) Read(args []string) bool {
	var keys stringList
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select checks to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select checks not to run")
	fs.StringVar(&c.fixturePath, "fixture", "", "JSON fixture file; if set, describe the context it builds instead of running checks")
	fs.Var(&keys, "key", "with -fixture, a request key to look up (may be repeated)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed checks")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all checks")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if len(keys) != 0 && c.fixturePath == "" {
		fmt.Fprintln(os.Stderr, "-key requires -fixture")
		fs.Usage()
		return false
	}
	c.lookupKeys = keys
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that runs only the given checks.
func rerunCommand(program string, failures []framework.CheckResult, debug bool) string {
	var b commandBuilder
	b.add(program)
	if debug {
		b.add("-debug")
	}
	for _, f := range failures {
		b.add("-run", strings.Join(quoteLevels(f.CheckID.Path), "/"))
	}
	return b.String()
}

func quoteLevels(path []string) []string {
	ret := make([]string, 0, len(path))
	for _, p := range path {
		ret = append(ret, "^"+regexp.QuoteMeta(p)+"$")
	}
	return ret
}
