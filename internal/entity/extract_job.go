package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractJob tracks one document through a batch run.
type ExtractJob struct {
	ID           uuid.UUID        `json:"id"`
	RunID        string           `json:"run_id,omitempty"`
	SourcePath   string           `json:"source_path"`
	Format       string           `json:"format"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   *time.Time       `json:"finished_at,omitempty"`
	Status       string           `json:"status"`
	ErrorMessage *string          `json:"error_message,omitempty"`
	Record       *ExtractedRecord `json:"record,omitempty"`
}
