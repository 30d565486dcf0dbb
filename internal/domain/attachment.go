package domain

import "time"

// MaxAttachmentSizeBytes is the per-file upload limit (5 MB).
const MaxAttachmentSizeBytes = 5 * 1024 * 1024

// Attachment stores metadata for a file attached to a ticket. Bytes live in
// external storage; only the URL is persisted. Attachments are deletable
// independently of the ticket.
type Attachment struct {
	ID         int64
	TicketID   int64
	UploadedBy int64
	FileName   string
	SizeBytes  int64
	StorageURL string
	CreatedAt  time.Time
}
