package main

import (
	"fmt"
	"os"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/launchdarkly/fake-http-context/conformance"
	"github.com/launchdarkly/fake-http-context/fakeweb"
	"github.com/launchdarkly/fake-http-context/fixture"
	"github.com/launchdarkly/fake-http-context/framework"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := fakeweb.NullLogger()
	if params.debugAll {
		loggers := ldlog.NewDefaultLoggers()
		loggers.SetMinLevel(ldlog.Debug)
		mainDebugLogger = loggers.ForLevel(ldlog.Debug)
	}

	if params.fixturePath != "" {
		if err := describeFixture(params.fixturePath, params.lookupKeys, mainDebugLogger); err != nil {
			fmt.Fprintf(os.Stderr, "Fixture error: %s\n", err)
			os.Exit(1)
		}
		return
	}

	subject := conformance.DefaultSubject()

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters, conformance.AllCapabilities, subject.Capabilities)

	fmt.Printf("Running checks against %s\n", subject.Name)

	checkLogger := consoleCheckLogger{
		debugOutputOnFailure: params.debug || params.debugAll,
		debugOutputOnSuccess: params.debugAll,
	}
	results := conformance.RunSuite(subject, params.filters.AsFilter, checkLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed checks:")
		fmt.Printf("  %s\n", rerunCommand(os.Args[0], results.Failures, true))
		os.Exit(1)
	}
}

func describeFixture(path string, keys []string, logger fakeweb.Logger) error {
	fc, err := fixture.Load(path)
	if err != nil {
		return err
	}
	ctx, err := fc.Build(fakeweb.WithLogger(logger))
	if err != nil {
		return err
	}
	defer ctx.Close()

	req := ctx.Request()
	appRelative, err := req.AppRelativeCurrentExecutionFilePath()
	if err != nil {
		appRelative = fmt.Sprintf("(%s)", err)
	}
	fmt.Printf("URL:                 %s\n", req.URL())
	fmt.Printf("Method:              %s\n", req.HTTPMethod())
	fmt.Printf("Application path:    %s\n", req.ApplicationPath())
	fmt.Printf("Path:                %s\n", req.Path())
	fmt.Printf("File path:           %s\n", req.FilePath())
	fmt.Printf("Path info:           %s\n", req.PathInfo())
	fmt.Printf("App-relative path:   %s\n", appRelative)
	fmt.Printf("Query string values: %d\n", req.QueryString().Count())
	fmt.Printf("Form values:         %d\n", req.Form().Count())
	fmt.Printf("Cookies:             %d\n", req.Cookies().Count())
	fmt.Printf("Posted files:        %d\n", req.Files().Count())
	fmt.Printf("Session ID:          %s\n", ctx.Session().SessionID())

	for _, key := range keys {
		if value, ok := req.Lookup(key); ok {
			fmt.Printf("%s = %q\n", key, value)
		} else {
			fmt.Printf("%s is not set\n", key)
		}
	}
	return nil
}
