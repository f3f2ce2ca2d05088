package record

// InquiryItem is one row of a written-question list page
type InquiryItem struct {
	Number           int    `json:"number"`
	Subject          string `json:"question_subject,omitempty"`
	Submitter        string `json:"submitter_name,omitempty"`
	ProgressStatus   string `json:"progress_status,omitempty"`
	ProgressLink     string `json:"progress_info_link,omitempty"`
	QuestionHTMLLink string `json:"question_html_link,omitempty"`
	QuestionPDFLink  string `json:"question_pdf_link,omitempty"`
	AnswerHTMLLink   string `json:"answer_html_link,omitempty"`
	AnswerPDFLink    string `json:"answer_pdf_link,omitempty"`
}

// InquiryList is the cached identifier list for one session
type InquiryList struct {
	Session int           `json:"session"`
	Source  string        `json:"source"`
	Items   []InquiryItem `json:"items"`
}

// InquiryStatus is the progress record of one written question
type InquiryStatus struct {
	SessionNumber        int    `json:"session_number"`
	SessionType          string `json:"session_type,omitempty"`
	QuestionNumber       int    `json:"question_number"`
	Subject              string `json:"question_subject,omitempty"`
	SubmitterName        string `json:"submitter_name,omitempty"`
	SubmitterCount       int    `json:"submitter_count,omitempty"`
	PartyName            string `json:"party_name,omitempty"`
	SubmittedDate        string `json:"submitted_date,omitempty"`
	CabinetTransferDate  string `json:"cabinet_transfer_date,omitempty"`
	ReplyDelayNoticeDate string `json:"reply_delay_notice_date,omitempty"`
	ReplyDelayDeadline   string `json:"reply_delay_deadline,omitempty"`
	ReplyReceivedDate    string `json:"reply_received_date,omitempty"`
	WithdrawalDate       string `json:"withdrawal_date,omitempty"`
	WithdrawalNoticeDate string `json:"withdrawal_notice_date,omitempty"`
	Status               Status `json:"status"`
}

// SessionEntry is one row of the Diet session calendar
type SessionEntry struct {
	SessionNumber int    `json:"session_number"`
	SessionType   string `json:"session_type,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	Dissolved     bool   `json:"dissolved"`
	TotalDays     int    `json:"total_days"`
	InitialDays   int    `json:"initial_days"`
	ExtensionDays int    `json:"extension_days"`
}

// VideoRecord is the metadata of one Shugiin TV deliberation video
type VideoRecord struct {
	DeliID      int      `json:"deli_id"`
	DateTime    string   `json:"date_time,omitempty"`
	MeetingName string   `json:"meeting_name,omitempty"`
	Topics      []string `json:"topics"`
	Speakers    []string `json:"speakers"`
	URL         string   `json:"url"`
}

// MeetingRecord is the subset of a minutes API record used for joins
type MeetingRecord struct {
	IssueID       string `json:"issueID"`
	Date          string `json:"date"`
	NameOfHouse   string `json:"nameOfHouse"`
	NameOfMeeting string `json:"nameOfMeeting"`
}

// MeetingResponse is the envelope of a cached minutes API response
type MeetingResponse struct {
	NextRecordPosition *int            `json:"nextRecordPosition"`
	MeetingRecord      []MeetingRecord `json:"meetingRecord"`
}

// Relation links one Shugiin TV video to its minutes record
type Relation struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	IssueID string `json:"issueID"`
	DeliID  int    `json:"deli_id"`
}
