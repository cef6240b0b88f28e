package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter decides whether a check should run.
type Filter func(CheckID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter selects checks the way "go test -run" does: each MustMatch pattern is split on "/"
// and its parts are matched against the corresponding levels of the check ID, so the parents
// of a selected check also run. MustNotMatch patterns are matched against the whole ID.
func (r RegexFilters) AsFilter(id CheckID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatchByLevel(id.Path)) &&
		!r.MustNotMatch.AnyMatch(id.String())
}

type RegexList struct {
	patterns []*regexp.Regexp
	levels   [][]*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	var levels []*regexp.Regexp
	for _, part := range strings.Split(value, "/") {
		lrx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex %q: %w", part, err)
		}
		levels = append(levels, lrx)
	}
	r.patterns = append(r.patterns, rx)
	r.levels = append(r.levels, levels)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// AnyMatchByLevel reports whether any pattern matches path level by level.
func (r RegexList) AnyMatchByLevel(path []string) bool {
	for _, levels := range r.levels {
		matched := true
		for i := 0; i < len(levels) && i < len(path); i++ {
			if !levels[i].MatchString(path[i]) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// PrintFilterDescription explains which checks may be skipped, either because of the -run and
// -skip patterns or because the implementation lacks some capabilities.
func PrintFilterDescription(out io.Writer, filters RegexFilters, allCapabilities []string, have Capabilities) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some checks will be skipped based on the filter criteria for this run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}

	if missing := have.Missing(allCapabilities); len(missing) > 0 {
		fmt.Fprintln(out, "Some checks may be skipped because the implementation does not support the following capabilities:")
		fmt.Fprintf(out, "  %s\n", strings.Join(missing, ", "))
		fmt.Fprintln(out)
	}
}
