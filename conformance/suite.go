package conformance

import (
	"github.com/launchdarkly/fake-http-context/framework"
)

// RunSuite runs every check against subject. The subject's capabilities decide which optional
// checks run.
func RunSuite(subject Subject, filter framework.Filter, checkLogger framework.CheckLogger) framework.Results {
	config := framework.RunConfig{
		Filter:       filter,
		CheckLogger:  checkLogger,
		Capabilities: subject.Capabilities,
	}
	return framework.Run(config, func(c *framework.Context) {
		t := newScope(c, subject)

		t.Run("store", DoStoreChecks)
		t.Run("request", DoRequestChecks)
		t.Run("output", DoOutputChecks)
		t.Run("response", DoResponseChecks)
		t.Run("state", DoStateChecks)
		t.Run("bridge", DoBridgeChecks)
	})
}
