package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/medagenda/medagenda/internal/config"
	"github.com/medagenda/medagenda/pkg/metrics"
)

// NotificationService sends booking confirmations over SMTP. When email
// is disabled by configuration it degrades to logging the would-be
// send, so development setups need no mail server.
type NotificationService struct {
	cfg     config.EmailConfig
	dialer  *gomail.Dialer
	metrics *metrics.Collector
	log     *zap.Logger
}

func NewNotificationService(cfg config.EmailConfig, m *metrics.Collector, log *zap.Logger) *NotificationService {
	svc := &NotificationService{cfg: cfg, metrics: m, log: log}
	if cfg.Enabled {
		svc.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	}
	return svc
}

func (s *NotificationService) SendBookingConfirmation(ctx context.Context, to, patientName, professionalName string, dateTime time.Time) error {
	if !s.cfg.Enabled {
		s.log.Info("email disabled, skipping booking confirmation",
			zap.String("to", to),
			zap.Time("date_time", dateTime),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SenderEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Appointment confirmation")
	msg.SetBody("text/html", bookingConfirmationBody(patientName, professionalName, dateTime))

	if err := s.dialer.DialAndSend(msg); err != nil {
		if s.metrics != nil {
			s.metrics.EmailsFailedTotal.Inc()
		}
		return fmt.Errorf("sending confirmation email: %w", err)
	}

	if s.metrics != nil {
		s.metrics.EmailsSentTotal.Inc()
	}
	s.log.Info("booking confirmation sent", zap.String("to", to))
	return nil
}

func bookingConfirmationBody(patientName, professionalName string, dateTime time.Time) string {
	with := ""
	if professionalName != "" {
		with = " with " + professionalName
	}
	return fmt.Sprintf(
		"<p>Hello %s,</p><p>Your appointment%s is confirmed for <strong>%s</strong>.</p><p>If you cannot attend, please contact the clinic.</p>",
		patientName, with, dateTime.Format("Monday, 2 January 2006 at 15:04"),
	)
}
