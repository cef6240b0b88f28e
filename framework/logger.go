package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/launchdarkly/fake-http-context/fakeweb"
)

const timestampFormat = "15:04:05.000"

// Logger is the same Printf-style logger that fakeweb.Context accepts, so a check's debug
// logger can be passed straight to fakeweb.WithLogger.
type Logger = fakeweb.Logger

func NullLogger() Logger { return fakeweb.NullLogger() }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps every message in memory. It is safe for concurrent use.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes each message on its own line with a timestamp. Continuation lines of a
// multi-line message are indented under the first.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := fmt.Sprintf("[%s] ", m.Time.Format(timestampFormat))
		lines := strings.Split(strings.TrimRight(m.Message, "\n"), "\n")
		fmt.Fprintf(dest, "%s%s%s\n", prefix, stamp, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(dest, "%s%s%s\n", prefix, strings.Repeat(" ", len(stamp)), line)
		}
	}
}
