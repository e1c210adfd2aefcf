package mail

import "gopkg.in/gomail.v2"

type TaskAssignedData struct {
	Name     string
	Title    string
	LeadName string
	DueDate  string
	Link     string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From    string
	BaseURL string
	dialer  Dialer
}
