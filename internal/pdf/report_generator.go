package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator is an interface so handlers can be tested with a mock.
type Generator interface {
	GenerateWeeklyReport(data WeeklyReportData) (string, error)
}

type ReportGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

type WeeklyReportData struct {
	UserID         int64
	DisplayName    string
	From           time.Time
	To             time.Time
	TasksCompleted int
	ExpEarned      int
	HealthRestored int
	Level          int
	CurrentStreak  int
	PerDay         map[string]int // "2006-01-02" -> count
	Filename       string         // base name; generated when empty
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *ReportGenerator) GenerateWeeklyReport(data WeeklyReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("weekly_report_user_%d_%s.pdf", data.UserID, data.To.Format("2006-01-02"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Weekly Chore Report - %s", data.DisplayName), false)
	pdf.SetAuthor("ChoreQuest", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "WEEKLY CHORE REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s  |  %s to %s",
		data.DisplayName,
		data.From.Format("02.01.2006"),
		data.To.Format("02.01.2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== totals
	g.sectionTitle(pdf, "Totals")
	g.kvLine(pdf, "Chores completed", fmt.Sprintf("%d", data.TasksCompleted))
	g.kvLine(pdf, "Experience earned", fmt.Sprintf("%d XP", data.ExpEarned))
	g.kvLine(pdf, "Area health restored", fmt.Sprintf("%d HP", data.HealthRestored))
	g.kvLine(pdf, "Current level", fmt.Sprintf("%d", data.Level))
	g.kvLine(pdf, "Current streak", fmt.Sprintf("%d days", data.CurrentStreak))
	pdf.Ln(2)
	g.hr(pdf)

	// ===== per-day breakdown
	g.sectionTitle(pdf, "Day by day")
	days := make([]string, 0, len(data.PerDay))
	for day := range data.PerDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No chores were completed this week.", "", "L", false)
	}
	for _, day := range days {
		g.kvLine(pdf, day, fmt.Sprintf("%d completed", data.PerDay[day]))
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== page numbers
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // safety
	return filepath.Join(g.RootDir, filename), nil
}
