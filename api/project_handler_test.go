package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokaque/proyecto-final-backend/models"
)

const projectJSON = `{
	"nombreProyecto": "Huerta escolar",
	"descripcion": "Cultivo de hortalizas en el patio",
	"objetivos": "Aprender ciclos de siembra",
	"institucion": "IE La Esperanza",
	"presupuesto": "500000",
	"observaciones": "Requiere abono",
	"areaConocimiento": "Ciencias",
	"fechaInicio": "2025-02-01",
	"integrantes": [
		{"nombre": "Ana", "apellido": "Ruiz", "id": "est-1", "grado": "10"}
	]
}`

func TestParseProjectInputJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/project", strings.NewReader(projectJSON))
	req.Header.Set("Content-Type", "application/json")

	in, schedule, err := parseProjectInput(req)
	require.NoError(t, err)
	assert.Nil(t, schedule)

	assert.Equal(t, "Huerta escolar", in.Name)
	assert.Equal(t, "Cultivo de hortalizas en el patio", in.Description)
	assert.Equal(t, "Aprender ciclos de siembra", in.Objectives)
	assert.Equal(t, "IE La Esperanza", in.Institution)
	assert.Equal(t, "500000", in.Budget)
	assert.Equal(t, "Requiere abono", in.Observations)
	assert.Equal(t, models.AreaSciences, in.KnowledgeArea)
	assert.Equal(t, "2025-02-01", in.StartDate)
	require.Len(t, in.Members, 1)
	assert.Equal(t, "Ana", in.Members[0].Name)
	assert.Equal(t, "est-1", in.Members[0].StudentID)
}

func TestParseProjectInputMultipart(t *testing.T) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("datos", projectJSON))
	part, err := form.CreateFormFile("cronograma", "cronograma.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/project", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	in, schedule, err := parseProjectInput(req)
	require.NoError(t, err)

	assert.Equal(t, "Huerta escolar", in.Name)
	assert.Equal(t, models.AreaSciences, in.KnowledgeArea)
	require.Len(t, in.Members, 1)

	require.NotNil(t, schedule)
	assert.Equal(t, "cronograma.pdf", schedule.Name)
	content, err := io.ReadAll(schedule.Content)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}

func TestParseProjectInputMultipartWithoutSchedule(t *testing.T) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("datos", projectJSON))
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/project", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	in, schedule, err := parseProjectInput(req)
	require.NoError(t, err)
	assert.Nil(t, schedule)
	assert.Equal(t, "Huerta escolar", in.Name)
}

func TestParseProjectInputMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/project", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	_, _, err := parseProjectInput(req)
	assert.Error(t, err)
}
