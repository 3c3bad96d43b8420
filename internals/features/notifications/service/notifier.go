package service

import (
	"log"

	"akademiku_backend/internals/configs"
)

// ChannelResult records the per-channel outcome of one notification.
type ChannelResult struct {
	EmailAttempted bool
	EmailErr       error
	SMSAttempted   bool
	SMSErr         error
}

func (r ChannelResult) AnySent() bool {
	return (r.EmailAttempted && r.EmailErr == nil) || (r.SMSAttempted && r.SMSErr == nil)
}

// Notifier fans a message out to every channel the recipient has.
// Channel failures are logged and never abort the caller: the payment
// state change is the authoritative outcome, notification is best effort.
type Notifier struct {
	Email EmailSender
	SMS   SMSSender
}

// NewNotifier picks real senders when configured, console fallbacks
// otherwise so dev environments keep working without SMTP/SMS creds.
func NewNotifier() *Notifier {
	n := &Notifier{
		Email: ConsoleEmailSender{},
		SMS:   ConsoleSMSSender{},
	}
	if configs.SMTPHost != "" {
		n.Email = NewGomailSender()
	}
	if configs.SMSAPIURL != "" {
		n.SMS = NewHTTPSMSSender()
	}
	return n
}

// Notify attempts email then SMS independently. Empty contact fields
// skip that channel.
func (n *Notifier) Notify(email, phone, subject, html, smsText string) ChannelResult {
	var res ChannelResult

	if email != "" && n.Email != nil {
		res.EmailAttempted = true
		if err := n.Email.Send(email, subject, html); err != nil {
			res.EmailErr = err
			log.Printf("[ERROR] email to %s failed: %v", email, err)
		}
	}

	if phone != "" && n.SMS != nil {
		res.SMSAttempted = true
		if err := n.SMS.Send(phone, smsText); err != nil {
			res.SMSErr = err
			log.Printf("[ERROR] sms to %s failed: %v", phone, err)
		}
	}

	return res
}
