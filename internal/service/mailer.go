package service

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/lshigami/examadmin/config"
)

// Mailer delivers candidate invitations. Delivery is always fired off the
// request path; a failed send never fails the invitation endpoint.
type Mailer interface {
	SendInvitation(to, name, examTitle, accessLink string) error
}

const invitationTemplate = `<html>
<body>
	<p>Hello {{.Name}},</p>
	<p>You have been invited to take the exam <strong>{{.ExamTitle}}</strong>.</p>
	<p>Use your personal link to start: <a href="{{.AccessLink}}">{{.AccessLink}}</a></p>
	<p>The link is valid for a single attempt. Good luck!</p>
</body>
</html>`

type smtpMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
	fromName string
	tmpl     *template.Template
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		user:     cfg.SMTP.User,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
		fromName: cfg.SMTP.FromName,
		tmpl:     template.Must(template.New("invitation").Parse(invitationTemplate)),
	}
}

func (m *smtpMailer) SendInvitation(to, name, examTitle, accessLink string) error {
	var body bytes.Buffer
	err := m.tmpl.Execute(&body, struct {
		Name       string
		ExamTitle  string
		AccessLink string
	}{Name: name, ExamTitle: examTitle, AccessLink: accessLink})
	if err != nil {
		return fmt.Errorf("rendering invitation email: %w", err)
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: Exam invitation: %s\r\n", examTitle)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("sending invitation to %s: %w", to, err)
	}
	return nil
}
