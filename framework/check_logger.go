package framework

// CheckLogger receives progress notifications from Run.
type CheckLogger interface {
	CheckStarted(id CheckID)
	CheckError(id CheckID, err error)
	CheckFinished(id CheckID, failed bool, debugOutput CapturedOutput)
	CheckSkipped(id CheckID, reason string)
}

type nullCheckLogger struct{}

func (n nullCheckLogger) CheckStarted(CheckID)                        {}
func (n nullCheckLogger) CheckError(CheckID, error)                   {}
func (n nullCheckLogger) CheckFinished(CheckID, bool, CapturedOutput) {}
func (n nullCheckLogger) CheckSkipped(CheckID, string)                {}
