package model

// SummarizationOutcome is the per-record result of the summarization stage.
// Summary and Err are mutually exclusive: Err is non-empty iff the unit
// failed, and Summary is meaningful only when Err is empty.
type SummarizationOutcome struct {
	Record  ReleaseRecord
	Summary string
	Err     string
}

// Failed reports whether the summarization unit for this record failed.
func (x SummarizationOutcome) Failed() bool {
	return x.Err != ""
}
