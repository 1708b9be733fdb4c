package mail

import "log/slog"

type Message struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	Body    string
	IsHTML  bool
}

type MailSender interface {
	Send(message *Message) error
}

// LogSender is the default backend: delivery is stubbed and the message is
// only noted in the log. Real deployments configure SMTP.
type LogSender struct{}

func (LogSender) Send(message *Message) error {
	slog.Info("Mail dispatch (log backend)", "to", message.To, "subject", message.Subject)
	return nil
}
