package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Milestone ("hito") is a progress entry for a project, with optional
// uploaded evidence. Unlike the status ledger, milestones can be edited and
// deleted; the underlying evidence files are never reclaimed.
type Milestone struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID    uuid.UUID                   `json:"proyectoId" db:"project_id" gorm:"type:uuid;not null;index"`
	Title        string                      `json:"titulo" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"descripcion" db:"description" gorm:"type:text;not null"`
	Date         time.Time                   `json:"fecha" db:"date" gorm:"not null"`
	EvidenceURLs datatypes.JSONSlice[string] `json:"evidenciaURLs" db:"evidence_urls" gorm:"type:jsonb"`
	OwnerID      uuid.UUID                   `json:"creadoPor" db:"owner_id" gorm:"type:uuid;not null"`
	CreatedAt    time.Time                   `json:"-" db:"created_at" gorm:"not null;autoCreateTime"`
}
