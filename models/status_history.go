package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistoryEntry is one immutable fact in a project's status ledger.
// Entries are only ever appended; nothing in the repository updates or
// deletes them.
type StatusHistoryEntry struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID      uuid.UUID `json:"proyectoId" db:"project_id" gorm:"type:uuid;not null;index"`
	PreviousStatus Status    `json:"estadoAnterior" db:"previous_status" gorm:"type:text;not null"`
	NewStatus      Status    `json:"nuevoEstado" db:"new_status" gorm:"type:text;not null"`
	Observation    string    `json:"observacion" db:"observation" gorm:"type:text;not null"`
	ChangedAt      time.Time `json:"fechaCambio" db:"changed_at" gorm:"not null"`
	ActorID        uuid.UUID `json:"realizadoPor" db:"actor_id" gorm:"type:uuid;not null"`
}
