package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/patasfelizes/clinic-api/pkg/logger"
)

type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to, patientName string, date time.Time, timeSlot string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewService returns an SMTP-backed sender, or a no-op sender when no
// SMTP host is configured (the usual case for the demo seed).
func NewService(cfg Config, log *logger.Logger) Service {
	if cfg.Host == "" {
		return &noopService{logger: log}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpService) SendAppointmentConfirmation(ctx context.Context, to, patientName string, date time.Time, timeSlot string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Appointment confirmed for %s", patientName))
	m.SetBody("text/plain", fmt.Sprintf(
		"An appointment for %s has been scheduled on %s at %s.\n\nPatas Felizes",
		patientName, date.Format("2006-01-02"), timeSlot,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopService struct {
	logger *logger.Logger
}

func (s *noopService) SendAppointmentConfirmation(ctx context.Context, to, patientName string, date time.Time, timeSlot string) error {
	s.logger.Debug("email disabled, skipping confirmation", "to", to, "patient", patientName)
	return nil
}
