package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokaque/proyecto-final-backend/models"
)

func sampleProject() *models.Project {
	return &models.Project{
		ID:            uuid.New(),
		Name:          "Robótica educativa",
		Description:   "Construcción de un robot seguidor de línea",
		Objectives:    "Introducir electrónica básica",
		Institution:   "IE La Esperanza",
		Budget:        "800000",
		ScheduleURL:   "https://proyectos.s3.us-east-1.amazonaws.com/cronogramas/abc-cronograma.pdf",
		Observations:  "Requiere sala de informática",
		KnowledgeArea: models.AreaTechnology,
		StartDate:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:        models.StatusActive,
		OwnerID:       uuid.New(),
		Members: []models.Member{
			{Name: "Ana", Surname: "Ruiz", StudentID: "est-1", Grade: "10"},
			{Name: "Juan", Surname: "Mejía", StudentID: "est-2", Grade: "11"},
		},
	}
}

func TestProjectReportProducesPDF(t *testing.T) {
	reports := NewReports()
	project := sampleProject()
	milestones := []*models.Milestone{
		{
			ID:          uuid.New(),
			ProjectID:   project.ID,
			Title:       "Prototipo armado",
			Description: "Chasis y motores montados",
			Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	pdf, err := reports.ProjectReport(project, milestones)
	require.NoError(t, err)

	assert.True(t, len(pdf) > 1000, "report should contain rendered pages")
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestProjectReportWithoutMilestones(t *testing.T) {
	reports := NewReports()

	pdf, err := reports.ProjectReport(sampleProject(), nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestSummaryReportProducesPDF(t *testing.T) {
	reports := NewReports()
	projects := []*models.Project{sampleProject(), sampleProject(), sampleProject()}

	pdf, err := reports.SummaryReport(projects)
	require.NoError(t, err)

	assert.True(t, len(pdf) > 1000)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestSummaryReportEmpty(t *testing.T) {
	reports := NewReports()

	pdf, err := reports.SummaryReport(nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
