// Package sender отправляет письма восстановления пароля по SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/lib/smtp"
	"github.com/artechoes/artechoes/internal/models"
)

// Transport устанавливает SMTP-соединение.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// Service потребляет сообщения почтовой очереди и отправляет письма.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport Transport) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendPasswordResetMail отправляет письмо со ссылкой восстановления пароля.
// body — JSON-сообщение из очереди mail.password_reset.
func (s *Service) SendPasswordResetMail(body []byte) error {
	var message models.PasswordResetMail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Восстановление пароля на ArtEchoes"
	bodyText := fmt.Sprintf(`Здравствуйте, %s!

Мы получили запрос на сброс пароля вашей учетной записи.
Чтобы задать новый пароль, перейдите по ссылке: %s

Ссылка действует 15 минут. Если вы не запрашивали сброс, просто проигнорируйте это письмо.`,
		message.Username, message.ResetLink)

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}
	defer wc.Close()

	if _, err := wc.Write([]byte(msg)); err != nil {
		s.log.Error("Failed to write message body", "error", sl.Err(err))
		return err
	}

	return nil
}
