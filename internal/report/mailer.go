package report

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer sends progress reports via Amazon SES. When no sender address is
// configured the mailer is created disabled and every send is a logged no-op.
type Mailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
}

// NewMailer creates the SES mailer. An empty fromEmail yields a disabled
// mailer rather than an error so the rest of the app runs without AWS.
func NewMailer(awsRegion, fromEmail, fromName string, debug bool) (*Mailer, error) {
	if fromEmail == "" {
		log.Println("Report mailer disabled: SES_FROM_EMAIL not configured")
		return &Mailer{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Report mailer enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &Mailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the mailer will actually send.
func (m *Mailer) IsEnabled() bool {
	return m.enabled
}

// SendProgressReport mails a rendered report to the given address.
func (m *Mailer) SendProgressReport(ctx context.Context, toEmail string, report *Report) error {
	if !m.enabled {
		log.Printf("Skipping email send (mailer disabled): progress report for %s to %s", report.StudentID, toEmail)
		return nil
	}

	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	subject := report.Subject()
	if m.debug {
		log.Printf("[DEBUG] Sending progress report: to=%s, subject=%s", toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(report.HTMLBody()),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(report.TextBody()),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send report to %s: %w", toEmail, err)
	}

	log.Printf("Progress report sent: to=%s, student=%s", toEmail, report.StudentID)
	return nil
}
