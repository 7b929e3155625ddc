package entity

import (
	"time"

	"github.com/google/uuid"
)

// Upload is one buffered file upload. Raw holds the exact bytes received so
// every later action (preview, process, plot, export) re-derives its dataset
// from the same source. Uploads live only in the in-memory store and expire
// with its TTL.
type Upload struct {
	Id         uuid.UUID
	FileName   string
	Size       int
	Raw        []byte
	UploadedAt time.Time
}
