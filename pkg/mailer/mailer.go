// Package mailer sends booking notification emails over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/keshav33450/Slot4Law/pkg/utils"

	"go.uber.org/zap"
)

// BookingEmailData carries everything the notification templates need,
// so sending never has to query the database.
type BookingEmailData struct {
	LawyerName    string `json:"lawyer_name"`
	LawyerEmail   string `json:"lawyer_email"`
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	UserEmail     string `json:"user_email"`
	UserPhone     string `json:"user_phone"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	Timezone      string `json:"timezone"`
	LegalMatter   string `json:"legal_matter"`
	MatterType    string `json:"matter_type"`
	CaseType      string `json:"case_type"`
	CaseSummary   string `json:"case_summary"`
	BookingRef    string `json:"booking_ref"`
}

type Mailer interface {
	SendLawyerNotification(data BookingEmailData) error
	SendClientConfirmation(data BookingEmailData) error
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// SendLawyerNotification tells the lawyer a consultation was booked
// and who to contact to confirm it.
func (m *smtpMailer) SendLawyerNotification(data BookingEmailData) error {
	subject := fmt.Sprintf("New Consultation Booking - %s %s", data.UserFirstName, data.UserLastName)

	var body strings.Builder
	body.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #333;\">")
	body.WriteString("<h2>New Consultation Booking</h2>")
	fmt.Fprintf(&body, "<p>Dear %s,</p><p>You have received a new consultation booking request.</p>", data.LawyerName)
	body.WriteString("<h3>Client Information</h3><ul>")
	fmt.Fprintf(&body, "<li><b>Name:</b> %s %s</li>", data.UserFirstName, data.UserLastName)
	fmt.Fprintf(&body, "<li><b>Email:</b> %s</li>", data.UserEmail)
	fmt.Fprintf(&body, "<li><b>Phone:</b> %s</li>", data.UserPhone)
	body.WriteString("</ul><h3>Booking Details</h3><ul>")
	fmt.Fprintf(&body, "<li><b>Reference:</b> %s</li>", data.BookingRef)
	fmt.Fprintf(&body, "<li><b>Date:</b> %s</li>", data.BookingDate)
	fmt.Fprintf(&body, "<li><b>Time:</b> %s</li>", data.BookingTime)
	fmt.Fprintf(&body, "<li><b>Timezone:</b> %s</li>", data.Timezone)
	body.WriteString("</ul><h3>Legal Matter Details</h3><ul>")
	fmt.Fprintf(&body, "<li><b>Legal Matter:</b> %s</li>", data.LegalMatter)
	fmt.Fprintf(&body, "<li><b>Matter Type:</b> %s</li>", data.MatterType)
	fmt.Fprintf(&body, "<li><b>Case Type:</b> %s</li>", data.CaseType)
	fmt.Fprintf(&body, "<li><b>Case Summary:</b> %s</li>", orDefault(data.CaseSummary, "Not provided"))
	body.WriteString("</ul><p>Please contact the client to confirm the consultation.</p>")
	body.WriteString("</body></html>")

	return m.send(data.LawyerEmail, subject, body.String())
}

// SendClientConfirmation acknowledges the booking to the client.
func (m *smtpMailer) SendClientConfirmation(data BookingEmailData) error {
	subject := fmt.Sprintf("Booking Confirmed - %s with %s", data.BookingDate, data.LawyerName)

	var body strings.Builder
	body.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #333;\">")
	body.WriteString("<h2>Your Consultation is Booked</h2>")
	fmt.Fprintf(&body, "<p>Dear %s,</p>", data.UserFirstName)
	fmt.Fprintf(&body, "<p>Your consultation with <b>%s</b> is confirmed.</p><ul>", data.LawyerName)
	fmt.Fprintf(&body, "<li><b>Reference:</b> %s</li>", data.BookingRef)
	fmt.Fprintf(&body, "<li><b>Date:</b> %s</li>", data.BookingDate)
	fmt.Fprintf(&body, "<li><b>Time:</b> %s (%s)</li>", data.BookingTime, data.Timezone)
	body.WriteString("</ul><p>The lawyer will contact you to confirm the consultation.</p>")
	body.WriteString("</body></html>")

	return m.send(data.UserEmail, subject, body.String())
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	msg := strings.Join([]string{
		"From: " + m.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	m.log.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
