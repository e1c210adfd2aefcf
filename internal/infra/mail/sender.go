package mail

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

//go:embed templates/task_assigned.html
var taskAssignedHTML string

var taskAssignedTmpl = template.Must(template.New("task_assigned").Parse(taskAssignedHTML))

const dueDateLayout = "02/01/2006 15:04"

func NewEmailSender(host string, port int, user, password, from, baseURL string) *EmailSender {
	return &EmailSender{
		From:    from,
		BaseURL: baseURL,
		dialer:  gomail.NewDialer(host, port, user, password),
	}
}

func NewEmailSenderWithDialer(d Dialer, from, baseURL string) *EmailSender {
	return &EmailSender{From: from, BaseURL: baseURL, dialer: d}
}

func (s *EmailSender) buildTaskAssigned(p queue.FollowUpTaskPayload) (*gomail.Message, error) {
	data := TaskAssignedData{
		Name:     p.AssigneeName,
		Title:    p.Title,
		LeadName: p.LeadName,
	}
	if data.Name == "" {
		data.Name = p.AssigneeEmail
	}
	if p.DueDate != nil {
		data.DueDate = p.DueDate.Format(dueDateLayout)
	}
	if s.BaseURL != "" {
		data.Link = fmt.Sprintf("%s/tasks/%s", s.BaseURL, p.TaskID)
	}

	var body bytes.Buffer
	if err := taskAssignedTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", p.AssigneeEmail)
	m.SetHeader("Subject", "New task: "+p.Title)
	m.SetBody("text/html", body.String())
	return m, nil
}

func (s *EmailSender) SendTaskAssigned(ctx context.Context, p queue.FollowUpTaskPayload) error {
	m, err := s.buildTaskAssigned(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}
	return nil
}
