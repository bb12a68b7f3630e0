// Package certificate lays out and renders the single-page player certificate.
//
// Rendering happens in two steps. Build turns a player into a Layout holding
// every string that appears on the page, and Draw paints a Layout onto a PDF.
// Both are pure: for the same player and year the output bytes are identical.
package certificate

import (
	"fmt"

	"github.com/HadiRehman/NLSA-USA/internal/domain"
)

const (
	missingValue = "N/A"
	statsHeading = "Highlight Stats"
	footerText   = "This certificate is issued digitally and remains valid without a physical seal."
)

type Row struct {
	Label string
	Value string
}

type Signature struct {
	RoleTitle string
	Line      string
	Caption   string
	Org       string
}

type Layout struct {
	Title         string
	Presented     string
	PlayerName    string
	Description   string
	Details       []string
	StatsHeading  string
	Rows          []Row
	CertificateID string
	Signature     Signature
	Footer        string
}

// CertificateID formats the identifier printed on a certificate.
func CertificateID(year int, playerID string) string {
	return fmt.Sprintf("CERT-%d-%s", year, playerID)
}

// Build resolves every piece of text on the certificate.
func Build(p domain.Player, year int, org string) Layout {
	rows := make([]Row, len(domain.AllStats))
	for i, f := range domain.AllStats {
		value := missingValue
		if v, ok := p.Stats.Lookup(f); ok {
			value = string(v)
		}
		rows[i] = Row{Label: f.Label(), Value: value}
	}

	return Layout{
		Title:       "CERTIFICATE OF ACHIEVEMENT",
		Presented:   "This certificate is proudly presented to",
		PlayerName:  p.PlayerName,
		Description: fmt.Sprintf("in recognition of outstanding performance in %s", p.SportCategory),
		Details: []string{
			"Event: " + p.EventName,
			"Date: " + p.EventDate,
			"Jersey Number: " + p.JerseyNumber,
		},
		StatsHeading:  statsHeading,
		Rows:          rows,
		CertificateID: "Certificate ID: " + CertificateID(year, p.ID),
		Signature: Signature{
			RoleTitle: "League Commissioner",
			Line:      "______________________________",
			Caption:   "Authorized League Official",
			Org:       org,
		},
		Footer: footerText,
	}
}
