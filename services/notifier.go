// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"naragroomer-backend/models"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notification event types.
const (
	NotificationWelcome       = "welcome"
	NotificationConfirmation  = "appointment_confirmation"
	NotificationReminder      = "appointment_reminder"
	NotificationPasswordReset = "password_reset"
)

// EmailSender abstracts the outbound email transport.
type EmailSender interface {
	Send(from string, to []string, subject, html string) (messageID string, err error)
}

type ResendSender struct {
	client *resend.Client
}

func NewResendSender() *ResendSender {
	return &ResendSender{client: resend.NewClient(os.Getenv("RESEND_API_KEY"))}
}

func (r *ResendSender) Send(from string, to []string, subject, html string) (string, error) {
	sent, err := r.client.Emails.Send(&resend.SendEmailRequest{
		From:    from,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}

// Notifier translates lifecycle events into outbound notifications. Every
// send is retried a bounded number of times with a fixed backoff, then logged
// to notification_logs as sent or failed. A failed notification never rolls
// back or blocks the lifecycle transition that triggered it.
type Notifier struct {
	db     *gorm.DB
	email  EmailSender
	twilio *twilio.RestClient

	from       string
	maxRetries int
	retryDelay time.Duration
}

func NewNotifier(db *gorm.DB, email EmailSender) *Notifier {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "Nara Groomer <noreply@naragroomer.com.br>"
	}

	n := &Notifier{
		db:         db,
		email:      email,
		from:       from,
		maxRetries: 3,
		retryDelay: time.Second,
	}

	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		n.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		})
	}

	return n
}

func (n *Notifier) SendWelcome(profile *models.Profile) error {
	subject := fmt.Sprintf("Bem-vindo(a) ao Nara Groomer, %s!", profile.FullName)
	html := fmt.Sprintf(
		"<p>Olá, %s!</p><p>Seja bem-vindo(a) ao Nara Groomer. Agora você pode agendar banho e tosa para seus pets.</p>",
		profile.FullName)

	return n.deliver(NotificationWelcome, &profile.ID, nil, profile.Email, subject, html)
}

func (n *Notifier) SendPasswordReset(email, userName, resetURL string) error {
	subject := "Recuperação de Senha - Nara Groomer"
	html := fmt.Sprintf(
		"<p>Olá, %s!</p><p>Para redefinir sua senha, acesse: <a href=\"%s\">%s</a></p><p>O link expira em 1 hora.</p>",
		userName, resetURL, resetURL)

	return n.deliver(NotificationPasswordReset, nil, nil, email, subject, html)
}

func (n *Notifier) SendAppointmentConfirmation(appt *models.Appointment, profile *models.Profile, pet *models.Pet, confirmURL string) error {
	subject := fmt.Sprintf("Agendamento Confirmado - %s", appt.AppointmentDate)
	html := fmt.Sprintf(
		"<p>Olá, %s!</p><p>Agendamento de %s para %s em %s às %s.</p><p>Confirme sua presença: <a href=\"%s\">%s</a></p>",
		profile.FullName, models.ServiceTypes[appt.ServiceType], pet.Name,
		appt.AppointmentDate, appt.AppointmentTime, confirmURL, confirmURL)

	return n.deliver(NotificationConfirmation, &profile.ID, &appt.ID, profile.Email, subject, html)
}

// SendAppointmentReminder emails the client and, when the phone is in E.164
// format and Twilio is configured, also pings via WhatsApp.
func (n *Notifier) SendAppointmentReminder(appt *models.Appointment, profile *models.Profile, pet *models.Pet) error {
	subject := fmt.Sprintf("Lembrete de Agendamento para %s", pet.Name)
	html := fmt.Sprintf(
		"<p>Olá, %s!</p><p>Lembrete: %s para %s amanhã, %s às %s.</p>",
		profile.FullName, models.ServiceTypes[appt.ServiceType], pet.Name,
		appt.AppointmentDate, appt.AppointmentTime)

	err := n.deliver(NotificationReminder, &profile.ID, &appt.ID, profile.Email, subject, html)

	n.sendWhatsApp(appt, profile, pet)

	return err
}

// deliver retries the email send and records the outcome. Only the email
// channel participates in the success/failure result.
func (n *Notifier) deliver(notifType string, profileID, appointmentID *uuid.UUID, to, subject, html string) error {
	var lastErr error
	for attempt := 1; attempt <= n.maxRetries; attempt++ {
		messageID, err := n.email.Send(n.from, []string{to}, subject, html)
		if err == nil {
			log.Printf("Email %s sent to %s (message %s, attempt %d)", notifType, to, messageID, attempt)
			n.logNotification(notifType, "email", profileID, appointmentID, to, subject, "sent", "")
			return nil
		}
		lastErr = err
		log.Printf("Email %s to %s failed on attempt %d/%d: %v", notifType, to, attempt, n.maxRetries, err)
		if attempt < n.maxRetries {
			time.Sleep(n.retryDelay)
		}
	}

	n.logNotification(notifType, "email", profileID, appointmentID, to, subject, "failed", lastErr.Error())
	return lastErr
}

func (n *Notifier) sendWhatsApp(appt *models.Appointment, profile *models.Profile, pet *models.Pet) {
	if n.twilio == nil || len(profile.Phone) == 0 || profile.Phone[0] != '+' {
		return
	}

	body := fmt.Sprintf("Olá, %s! Lembrete: %s para %s amanhã, %s às %s.",
		profile.FullName, models.ServiceTypes[appt.ServiceType], pet.Name,
		appt.AppointmentDate, appt.AppointmentTime)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + profile.Phone)
	params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	params.SetBody(body)

	resp, err := n.twilio.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if err != nil {
		log.Printf("WhatsApp reminder to %s failed: %v", profile.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("WhatsApp reminder sent to %s, SID: %s", profile.Phone, *resp.Sid)
	}

	n.logNotification(NotificationReminder, "whatsapp", &profile.ID, &appt.ID, profile.Phone, "", status, errorMsg)
}

func (n *Notifier) logNotification(notifType, channel string, profileID, appointmentID *uuid.UUID, recipient, subject, status, errorMsg string) {
	if n.db == nil {
		return
	}
	entry := models.NotificationLog{
		ProfileID:     profileID,
		AppointmentID: appointmentID,
		Type:          notifType,
		Channel:       channel,
		Recipient:     recipient,
		Subject:       subject,
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}
	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log %s notification for %s: %v", notifType, recipient, err)
	}
}
