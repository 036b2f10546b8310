package models

// SourceResult is the outcome of collecting one source. A failed source
// carries its error here instead of aborting the run; the orchestrator
// reports failures and keeps going.
type SourceResult struct {
	Source   string
	Jobs     []Job
	Parsed   int
	InWindow int
	Err      error
}

func (r SourceResult) Failed() bool {
	return r.Err != nil
}
