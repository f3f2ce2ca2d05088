package record

import "strings"

// Status is the derived lifecycle stage of a resource
type Status string

const (
	// StatusAnswerReceived is terminal: the cabinet's written answer arrived
	StatusAnswerReceived Status = "答弁受理"
	// StatusCabinetTransfer means the question was forwarded to the cabinet
	StatusCabinetTransfer Status = "内閣転送"
	// StatusQuestionReceived means the question was accepted for processing
	StatusQuestionReceived Status = "質問受理"
	// StatusPending means no lifecycle date is known yet
	StatusPending Status = ""
)

// Terminal reports whether no further upstream change is expected, making
// the cached record permanent
func (s Status) Terminal() bool {
	return s == StatusAnswerReceived
}

// Stage pairs a date-like field value with the status it implies
type Stage struct {
	Value string
	Label Status
}

// Classify returns the label of the first stage whose field is non-empty.
// Stages are ordered most-terminal first, so a later lifecycle date always
// overrides earlier ones. Returns StatusPending when nothing is set.
func Classify(stages []Stage) Status {
	for _, st := range stages {
		if strings.TrimSpace(st.Value) != "" {
			return st.Label
		}
	}
	return StatusPending
}

// Classify derives the status of an inquiry from its lifecycle dates
func (s InquiryStatus) Classify() Status {
	return Classify([]Stage{
		{s.ReplyReceivedDate, StatusAnswerReceived},
		{s.CabinetTransferDate, StatusCabinetTransfer},
		{s.SubmittedDate, StatusQuestionReceived},
	})
}
