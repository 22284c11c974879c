package store

import "time"

// Well-known keys for the lists the UI keeps locally. The backend does not
// yet expose retrieval endpoints for these.
const (
	KeySentDocuments      = "sent_documents"
	KeyCompetitors        = "competitors"
	KeyEmailNotifications = "email_notifications"
)

// DocumentRecord is a document the user uploaded and forwarded to the memory
// store. Removal is local-only; there is no confirmed backend deletion.
type DocumentRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ResourceID string    `json:"resourceId"`
	SentAt     time.Time `json:"sentAt"`
}
