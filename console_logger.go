package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/launchdarkly/fake-http-context/framework"
)

type consoleCheckLogger struct {
	debugOutputOnFailure bool
	debugOutputOnSuccess bool
}

var (
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
)

func (c consoleCheckLogger) CheckStarted(id framework.CheckID) {
	fmt.Printf("[%s]\n", id)
}

func (c consoleCheckLogger) CheckError(id framework.CheckID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c consoleCheckLogger) CheckFinished(id framework.CheckID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  %s %s\n", failedLabel("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.debugOutputOnFailure) || (!failed && c.debugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c consoleCheckLogger) CheckSkipped(id framework.CheckID, reason string) {
	if reason == "" {
		fmt.Printf("  %s %s\n", skippedLabel("SKIPPED:"), id)
	} else {
		fmt.Printf("  %s %s (%s)\n", skippedLabel("SKIPPED:"), id, reason)
	}
}
