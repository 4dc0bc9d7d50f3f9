package domain

import "time"

// EmailAttachment describes a file attached to an inbound email.
type EmailAttachment struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

// EmailRFP is an inbound RFP email sitting in the import mailbox.
// The mailbox is read-only seed data; import marks an email processed
// but never removes it.
type EmailRFP struct {
	ID           int
	Subject      string
	Sender       string
	ReceivedDate time.Time
	Attachments  []EmailAttachment
	Processed    bool
}
