package certificate

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"github.com/go-pdf/fpdf"
	"github.com/gosimple/slug"
)

// A4 portrait, millimetres.
const (
	pageW      = 210.0
	tableLabel = 85.0
	tableValue = 45.0
	rowH       = 7.0
)

// DejaVu covers Latin Extended, Greek and Cyrillic names that the core
// PDF fonts cannot encode.
const fontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontItalic []byte
)

type Renderer struct {
	org string
	now func() time.Time
}

func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{org: cfg.OrganizationName, now: time.Now}
}

// NewRendererWithClock is used where the render year must be fixed.
func NewRendererWithClock(org string, now func() time.Time) *Renderer {
	return &Renderer{org: org, now: now}
}

func (r *Renderer) Render(p domain.Player) ([]byte, error) {
	year := r.now().Year()
	return Draw(Build(p, year, r.org), year)
}

// Filename is the download name for a player's certificate.
func (r *Renderer) Filename(p domain.Player) string {
	name := slug.Make(p.PlayerName)
	if name == "" {
		name = p.ID
	}
	return fmt.Sprintf("certificate-%s.pdf", name)
}

// Draw paints l onto a single PDF page. Document dates are pinned to the
// start of year so that output depends only on the layout and the year.
func Draw(l Layout, year int) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	stamp := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(l.Title, true)
	pdf.SetAuthor(l.Signature.Org, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(15, 15, 15)
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fontItalic)
	pdf.AddPage()

	centered := func(h float64, txt string) {
		pdf.CellFormat(0, h, txt, "", 1, "C", false, 0, "")
	}

	// border
	pdf.SetDrawColor(184, 134, 11)
	pdf.SetLineWidth(1.6)
	pdf.Rect(8, 8, pageW-16, 281, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(12, 12, pageW-24, 273, "D")

	pdf.SetTextColor(20, 33, 61)
	pdf.SetY(24)
	pdf.SetFont(fontFamily, "B", 26)
	centered(12, l.Title)

	pdf.SetFont(fontFamily, "I", 13)
	centered(8, l.Presented)

	pdf.SetFont(fontFamily, "B", 30)
	centered(16, l.PlayerName)

	pdf.SetFont(fontFamily, "", 12)
	centered(8, l.Description)
	pdf.Ln(2)

	pdf.SetFont(fontFamily, "", 11)
	for _, d := range l.Details {
		centered(6, d)
	}
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 14)
	centered(9, l.StatsHeading)

	left := (pageW - tableLabel - tableValue) / 2
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.SetFillColor(20, 33, 61)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetX(left)
	pdf.CellFormat(tableLabel, rowH, "Stat", "1", 0, "L", true, 0, "")
	pdf.CellFormat(tableValue, rowH, "Value", "1", 1, "C", true, 0, "")

	pdf.SetTextColor(20, 33, 61)
	pdf.SetFont(fontFamily, "", 10)
	for i, row := range l.Rows {
		shade := i%2 == 0
		if shade {
			pdf.SetFillColor(243, 239, 226)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetX(left)
		pdf.CellFormat(tableLabel, rowH, row.Label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(tableValue, rowH, row.Value, "1", 1, "C", true, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont(fontFamily, "", 9)
	centered(6, l.CertificateID)

	pdf.Ln(8)
	pdf.SetFont(fontFamily, "B", 12)
	centered(6, l.Signature.RoleTitle)
	pdf.SetFont(fontFamily, "", 11)
	centered(6, l.Signature.Line)
	pdf.SetFont(fontFamily, "I", 10)
	centered(5, l.Signature.Caption)
	pdf.SetFont(fontFamily, "B", 10)
	centered(5, l.Signature.Org)

	pdf.SetY(272)
	pdf.SetFont(fontFamily, "I", 8)
	pdf.SetTextColor(110, 110, 110)
	centered(5, l.Footer)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
