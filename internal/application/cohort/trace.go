package cohort

// Trace receives human readable progress for one sync run.
type Trace interface {
	Output(message string)
	Finished()
}

type nopTrace struct{}

func (nopTrace) Output(string) {}
func (nopTrace) Finished()     {}
