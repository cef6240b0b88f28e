package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Checks   []CheckResult
	Failures []CheckResult
	Skipped  []CheckResult
}

type CheckResult struct {
	CheckID CheckID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// CheckID is the path of names from the root check to a sub-check.
type CheckID struct {
	Path []string
}

func (c CheckID) Plus(name string) CheckID {
	return CheckID{Path: append(append([]string(nil), c.Path...), name)}
}

func (c CheckID) String() string {
	return strings.Join(c.Path, "/")
}

type CheckFailure struct {
	ID  CheckID
	Err error
}

func (f CheckFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the run, listing each failed check with its errors.
func PrintResults(out io.Writer, results Results) {
	if results.OK() {
		fmt.Fprintf(out, "All checks passed (%d run, %d skipped)\n", len(results.Checks), len(results.Skipped))
		return
	}
	fmt.Fprintf(out, "FAILED: %d of %d checks (%d skipped)\n",
		len(results.Failures), len(results.Checks), len(results.Skipped))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.CheckID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}
