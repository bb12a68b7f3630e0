package notify

import (
	"fmt"
	"strings"

	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/mailer"
)

func CertificateMessage(p domain.Player, to, filename string, pdf []byte) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", p.PlayerName)
	fmt.Fprintf(&b, "Congratulations! Your registration for %s has been approved.\n", p.EventName)
	b.WriteString("Your certificate of achievement is attached to this email.\n\n")
	b.WriteString("Best regards,\nLeague Administration\n")

	return mailer.Message{
		To:      to,
		Subject: fmt.Sprintf("Your %s Certificate", p.SportCategory),
		Body:    b.String(),
		Attachments: []mailer.Attachment{{
			Filename:    filename,
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
}

func RejectionMessage(p domain.Player, to string) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", p.PlayerName)
	fmt.Fprintf(&b, "We regret to inform you that your registration for %s has been rejected.\n", p.EventName)
	b.WriteString("Please contact the league office if you believe this is a mistake.\n\n")
	b.WriteString("Best regards,\nLeague Administration\n")

	return mailer.Message{
		To:      to,
		Subject: "Registration Update",
		Body:    b.String(),
	}
}
