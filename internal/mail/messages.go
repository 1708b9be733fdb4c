package mail

import "fmt"

func SendVerificationEmail(sender MailSender, toEmail string, verifyURL string) error {
	body := fmt.Sprintf(
		"Welcome!\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nIf you did not create this account, you can ignore this message.\n",
		verifyURL,
	)
	return sender.Send(&Message{
		To:      []string{toEmail},
		Subject: "Please verify your email address",
		Body:    body,
	})
}

func SendPasswordResetEmail(sender MailSender, toEmail string, resetURL string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nOpen the link below within one hour to choose a new password:\n\n%s\n\nIf you did not request this, no action is needed.\n",
		resetURL,
	)
	return sender.Send(&Message{
		To:      []string{toEmail},
		Subject: "Reset your password",
		Body:    body,
	})
}
