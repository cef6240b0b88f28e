package conformance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/fake-http-context/collection"
	"github.com/launchdarkly/fake-http-context/framework"
)

func failureMessages(results framework.Results) string {
	var b strings.Builder
	framework.PrintResults(&b, results)
	return b.String()
}

func TestDefaultSubjectPassesSuite(t *testing.T) {
	results := RunSuite(DefaultSubject(), nil, nil)
	require.True(t, results.OK(), failureMessages(results))
	assert.NotEmpty(t, results.Checks)
	assert.Empty(t, results.Skipped)
}

func TestSuiteSkipsUndeclaredCapabilities(t *testing.T) {
	subject := DefaultSubject()
	subject.Capabilities = framework.Capabilities{CapabilityOutput}

	results := RunSuite(subject, nil, nil)
	require.True(t, results.OK(), failureMessages(results))

	var skipped []string
	for _, r := range results.Skipped {
		skipped = append(skipped, r.CheckID.String())
	}
	assert.Contains(t, skipped, "response")
	assert.Contains(t, skipped, "bridge")
	assert.Contains(t, skipped, "state/session")
	assert.Contains(t, skipped, "state/application")
	assert.NotContains(t, skipped, "output")
}

func TestSuiteFilter(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("store/case"))

	results := RunSuite(DefaultSubject(), filters.AsFilter, nil)
	require.True(t, results.OK(), failureMessages(results))

	var ran []string
	for _, r := range results.Checks {
		ran = append(ran, r.CheckID.String())
	}
	assert.ElementsMatch(t, []string{"store", "store/case-insensitive comparer"}, ran)
}

// brokenStore ignores the first-match rule so the suite has something to report.
type brokenStore struct {
	*collection.Collection[string]
}

func (s brokenStore) Get(key string) (string, bool) {
	values := s.GetAll(key)
	if len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

func TestSuiteReportsFailures(t *testing.T) {
	subject := DefaultSubject()
	subject.NewStore = func(caseInsensitive bool) Store {
		comparer := collection.Ordinal
		if caseInsensitive {
			comparer = collection.IgnoreCase
		}
		return brokenStore{collection.New[string](comparer)}
	}

	results := RunSuite(subject, nil, nil)
	require.False(t, results.OK())

	var failed []string
	for _, r := range results.Failures {
		failed = append(failed, r.CheckID.String())
	}
	assert.Contains(t, failed, "store/first match wins for duplicate keys")
	assert.Contains(t, failureMessages(results), "FAILED")
}
