package notify

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
)

// MailConfig holds the SMTP settings of the mail sink.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender sends one message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailSink e-mails each event to its target user, when the user has an address.
type MailSink struct {
	from   string
	sender Sender
	users  portsrepo.UserRepositoryFacade
}

// NewMailSink returns nil when no SMTP host is configured.
func NewMailSink(cfg MailConfig, users portsrepo.UserRepositoryFacade) *MailSink {
	if cfg.Host == "" {
		return nil
	}
	return NewMailSinkWithSender(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), users)
}

// NewMailSinkWithSender builds a sink around an existing sender.
func NewMailSinkWithSender(from string, sender Sender, users portsrepo.UserRepositoryFacade) *MailSink {
	return &MailSink{from: from, sender: sender, users: users}
}

func (s *MailSink) Name() string { return "mail" }

func (s *MailSink) Deliver(ctx context.Context, event domain.Event, targetUserID string) error {
	user, err := s.users.FindUserByID(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("look up recipient: %w", err)
	}
	if user.Email == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetAddressHeader("To", user.Email, user.Name)
	msg.SetHeader("Subject", subjectFor(event))
	msg.SetBody("text/html", bodyFor(event, user.Name))

	if err := s.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", user.Email, err)
	}
	return nil
}

func subjectFor(event domain.Event) string {
	switch event.Type {
	case domain.EventRequestCreated:
		return "New ATK request: " + event.ItemName
	case domain.EventRequestInReview:
		return "ATK request under review: " + event.ItemName
	case domain.EventRequestApproved:
		return "ATK request approved: " + event.ItemName
	case domain.EventRequestRejected:
		return "ATK request rejected: " + event.ItemName
	case domain.EventRequestFinished:
		return "ATK ready for pickup: " + event.ItemName
	case domain.EventStockLow:
		return "Low stock: " + event.ItemName
	default:
		return "ATK notification"
	}
}

func bodyFor(event domain.Event, name string) string {
	ref := ""
	if event.RequestID != "" {
		ref = fmt.Sprintf("<p>Request: <strong>%s</strong></p>", html.EscapeString(event.RequestID))
	}
	return fmt.Sprintf(`<html>
	<body>
		<p>Hello %s,</p>
		<p>%s</p>
		%s
		<p>This is an auto-generated email. Please do not reply.</p>
	</body>
</html>`, html.EscapeString(name), html.EscapeString(event.Message), ref)
}
