package services

import (
	"bytes"

	"github.com/go-pdf/fpdf"
	"github.com/samber/lo"

	"github.com/pokaque/proyecto-final-backend/models"
)

// Reports renders downloadable PDF artifacts from project records. Pure
// formatting: nothing here reads or writes the store.
type Reports struct{}

func NewReports() *Reports {
	return &Reports{}
}

const dateLayout = "2006-01-02"

// table header fill used across all reports
func headerStyle(pdf *fpdf.Fpdf) {
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
}

func rowStyle(pdf *fpdf.Fpdf, alternate bool) {
	if alternate {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "", 10)
}

func drawTable(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, head []string, rows [][]string) {
	headerStyle(pdf)
	for i, h := range head {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for n, row := range rows {
		rowStyle(pdf, n%2 == 1)
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func labeled(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		value = "Sin especificar"
	}
	pdf.CellFormat(0, 7, tr(label+": "+value), "", 1, "L", false, 0, "")
}

func paragraph(pdf *fpdf.Fpdf, tr func(string) string, title, body string) {
	if body == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr(title+":"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(body), "", "L", false)
	pdf.Ln(3)
}

// ProjectReport renders the per-project document: header fields, the
// descriptive paragraphs, the schedule link if any, then member and
// milestone tables.
func (r *Reports) ProjectReport(project *models.Project, milestones []*models.Milestone) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Informe del Proyecto Escolar"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	labeled(pdf, tr, "Nombre", project.Name)
	labeled(pdf, tr, "Área", string(project.KnowledgeArea))
	labeled(pdf, tr, "Institución", project.Institution)
	labeled(pdf, tr, "Presupuesto", project.Budget)
	labeled(pdf, tr, "Fecha de Inicio", project.StartDate.Format(dateLayout))
	labeled(pdf, tr, "Estado", string(project.Status))
	pdf.Ln(3)

	paragraph(pdf, tr, "Descripción", project.Description)
	paragraph(pdf, tr, "Objetivos", project.Objectives)
	paragraph(pdf, tr, "Observaciones", project.Observations)

	if project.ScheduleURL != "" {
		pdf.SetTextColor(0, 0, 255)
		pdf.SetFont("Helvetica", "U", 10)
		pdf.WriteLinkString(6, tr("Ver cronograma"), project.ScheduleURL)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(8)
	}

	if len(project.Members) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr("Integrantes del equipo:"), "", 1, "L", false, 0, "")
		rows := lo.Map(project.Members, func(m models.Member, _ int) []string {
			return []string{m.Name, m.Surname, m.StudentID, m.Grade}
		})
		drawTable(pdf, tr, []float64{50, 50, 50, 40}, []string{"Nombre", "Apellido", "ID", "Grado"}, rows)
	}

	if len(milestones) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr("Hitos del proyecto:"), "", 1, "L", false, 0, "")
		rows := lo.Map(milestones, func(m *models.Milestone, _ int) []string {
			return []string{m.Date.Format(dateLayout), m.Description}
		})
		drawTable(pdf, tr, []float64{40, 150}, []string{"Fecha", "Descripción"}, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SummaryReport renders the cross-project table for coordinators.
func (r *Reports) SummaryReport(projects []*models.Project) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Reporte General de Proyectos"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := lo.Map(projects, func(p *models.Project, _ int) []string {
		return []string{
			p.Name,
			string(p.KnowledgeArea),
			p.Institution,
			string(p.Status),
			p.StartDate.Format(dateLayout),
		}
	})
	drawTable(pdf, tr, []float64{50, 35, 45, 30, 30}, []string{"Nombre", "Área", "Institución", "Estado", "Fecha de Inicio"}, rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
