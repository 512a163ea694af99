package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/deadline"
)

const (
	overdueSubject  = "Action Required: Syllabus Lag Detected for %s"
	upcomingSubject = "Reminder: Upcoming Topics for %s"
)

const htmlBody = `<html>
<body>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #333;">{{if .Overdue}}Syllabus progress alert{{else}}Upcoming topics{{end}}</h2>
<p>Hello{{with .Name}} Dr. {{.}}{{end}},</p>
{{if .Overdue}}<p>The following topics in <b>{{.CourseName}} ({{.CourseCode}})</b> have passed their target completion date:</p>
{{else}}<p>The following topics in <b>{{.CourseName}} ({{.CourseCode}})</b> are due in the next few days:</p>
{{end}}<ul>
{{range .Topics}}<li><b>{{.Title}}</b> (Module: {{.Module}}) - Due: {{.TargetDate.Format "Jan 2, 2006"}}</li>
{{end}}</ul>
<p>Please log in to the syllabus tracker to {{if .Overdue}}update your progress or adjust the plan{{else}}prepare and mark topics as you complete them{{end}}.</p>
<p>AI Syllabus Tracker</p>
</div>
</body>
</html>`

const textBody = `Hello{{with .Name}} Dr. {{.}}{{end}},

{{if .Overdue}}The following topics in {{.CourseName}} ({{.CourseCode}}) have passed their target completion date:{{else}}The following topics in {{.CourseName}} ({{.CourseCode}}) are due in the next few days:{{end}}
{{range .Topics}}
- {{.Title}} (Module: {{.Module}}) - Due: {{.TargetDate.Format "Jan 2, 2006"}}{{end}}

Please log in to the syllabus tracker to review your progress.
`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("reminder.html").Parse(htmlBody))
	textTmpl = texttemplate.Must(texttemplate.New("reminder.txt").Parse(textBody))
)

type reminderData struct {
	Name       string
	CourseName string
	CourseCode string
	Overdue    bool
	Topics     []models.Topic
}

// RenderReminder builds the reminder for one batch of topics.
func RenderReminder(to Address, course *models.Course, topics []models.Topic, kind deadline.Status) (Message, error) {
	var subject string
	switch kind {
	case deadline.StatusOverdue:
		subject = fmt.Sprintf(overdueSubject, course.Code)
	case deadline.StatusUpcoming:
		subject = fmt.Sprintf(upcomingSubject, course.Code)
	default:
		return Message{}, fmt.Errorf("no reminder for status %s", kind)
	}

	data := reminderData{
		Name:       to.Name,
		CourseName: course.Name,
		CourseCode: course.Code,
		Overdue:    kind == deadline.StatusOverdue,
		Topics:     topics,
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("rendering html reminder: %w", err)
	}
	if err := textTmpl.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("rendering text reminder: %w", err)
	}

	return Message{To: to, Subject: subject, HTML: html.String(), Text: text.String()}, nil
}

// Notifier renders and sends deadline reminders, one message per call.
type Notifier struct {
	sender  Sender
	timeout time.Duration
	logger  zerolog.Logger
}

// NewNotifier creates a Notifier. timeout bounds each send.
func NewNotifier(sender Sender, timeout time.Duration, logger zerolog.Logger) *Notifier {
	return &Notifier{sender: sender, timeout: timeout, logger: logger}
}

// Notify sends one reminder listing topics of the given kind. Failures are
// logged with the recipient and returned.
func (n *Notifier) Notify(ctx context.Context, to Address, course *models.Course, topics []models.Topic, kind deadline.Status) error {
	msg, err := RenderReminder(to, course, topics, kind)
	if err != nil {
		return err
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Error().Err(err).
			Str("to", to.Email).
			Str("course", course.Code).
			Str("kind", kind.String()).
			Msg("Failed to send reminder")
		return fmt.Errorf("sending %s reminder to %s: %w", kind, to.Email, err)
	}

	n.logger.Info().
		Str("to", to.Email).
		Str("course", course.Code).
		Str("kind", kind.String()).
		Int("topics", len(topics)).
		Msg("Reminder sent")
	return nil
}
