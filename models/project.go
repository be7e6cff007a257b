package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status is the lifecycle state of a project. Values are the ones the
// coordinator picks from, in the language the institution works in.
type Status string

const (
	StatusFormulation Status = "Formulación"
	StatusEvaluation  Status = "Evaluación"
	StatusActive      Status = "Activo"
	StatusInactive    Status = "Inactivo"
	StatusFinished    Status = "Finalizado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusFormulation, StatusEvaluation, StatusActive, StatusInactive, StatusFinished:
		return true
	}
	return false
}

// KnowledgeArea classifies the project's field of research.
type KnowledgeArea string

const (
	AreaSciences       KnowledgeArea = "Ciencias"
	AreaTechnology     KnowledgeArea = "Tecnología"
	AreaMathematics    KnowledgeArea = "Matemáticas"
	AreaSocialSciences KnowledgeArea = "Ciencias Sociales"
)

func (a KnowledgeArea) Valid() bool {
	switch a {
	case AreaSciences, AreaTechnology, AreaMathematics, AreaSocialSciences:
		return true
	}
	return false
}

// Member is a student assigned to a project. StudentID references the
// student's user id when the member has an account; it is a plain stamp,
// not a foreign key.
type Member struct {
	Name      string `json:"nombre"`
	Surname   string `json:"apellido"`
	StudentID string `json:"id"`
	Grade     string `json:"grado"`
}

// Project is a school research project record. OwnerID is immutable after
// creation; Status and LastStatusObservation are only written through the
// status ledger.
type Project struct {
	ID                    uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name                  string                      `json:"nombreProyecto" db:"name" gorm:"type:text;not null"`
	Description           string                      `json:"descripcion" db:"description" gorm:"type:text;not null"`
	Objectives            string                      `json:"objetivos" db:"objectives" gorm:"type:text;not null"`
	Institution           string                      `json:"institucion" db:"institution" gorm:"type:text;not null"`
	Budget                string                      `json:"presupuesto" db:"budget" gorm:"type:text"`
	ScheduleURL           string                      `json:"cronogramaURL,omitempty" db:"schedule_url" gorm:"type:text"`
	Observations          string                      `json:"observaciones" db:"observations" gorm:"type:text"`
	LastStatusObservation string                      `json:"observacionCambioEstado,omitempty" db:"last_status_observation" gorm:"type:text"`
	KnowledgeArea         KnowledgeArea               `json:"areaConocimiento" db:"knowledge_area" gorm:"type:text;not null"`
	StartDate             time.Time                   `json:"fechaInicio" db:"start_date" gorm:"not null"`
	Status                Status                      `json:"estado" db:"status" gorm:"type:text;not null;default:'Inactivo'"`
	OwnerID               uuid.UUID                   `json:"creadoPor" db:"owner_id" gorm:"type:uuid;not null;index"`
	Members               datatypes.JSONSlice[Member] `json:"integrantes" db:"members" gorm:"type:jsonb"`
	CreatedAt             time.Time                   `json:"-" db:"created_at" gorm:"not null;autoCreateTime"`
}

// HasMember reports whether the given student user id appears in the
// project's member list.
func (p *Project) HasMember(studentID string) bool {
	for _, m := range p.Members {
		if m.StudentID == studentID {
			return true
		}
	}
	return false
}
