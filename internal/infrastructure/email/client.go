// Package email provides the email client for sending notification emails.
package email

import (
	"errors"
	"fmt"
	"os"

	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email/templates"
	"github.com/Engnr-Qasim/dreamers-app/pkg/config"
	"github.com/resendlabs/resend-go"
)

// ErrSenderDisabled is returned by the disabled sender when no email provider
// is configured. Callers treat it like any other dispatch failure: logged,
// never surfaced.
var ErrSenderDisabled = errors.New("email sender disabled: RESEND_API_KEY not set")

// Attachment carries a report photo into the notification. The bytes are
// base64-encoded and never persisted.
type Attachment struct {
	Filename string
	Content  string
}

// LoginParams is the fixed parameter set of the login notification.
type LoginParams struct {
	FromName  string
	FromEmail string
	Phone     string
	Location  string
}

// ReportParams is the fixed parameter set of the report notification.
type ReportParams struct {
	FromName    string
	FromEmail   string
	IssueType   string
	Location    string
	Description string
	Priority    string
	Attachment  *Attachment
}

// CampaignJoinParams is the fixed parameter set of the campaign-join notification.
type CampaignJoinParams struct {
	FromName     string
	FromEmail    string
	CampaignName string
	Location     string
}

// Service defines the interface for sending notification emails, allowing for
// mock implementations in tests.
type Service interface {
	SendLoginNotification(params LoginParams) error
	SendReportNotification(params ReportParams) error
	SendCampaignJoinNotification(params CampaignJoinParams) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	inbox     string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: config.EmailFrom,
		fromName:  config.EmailFromName,
		inbox:     config.NotifyInbox,
	}, nil
}

// SendLoginNotification composes and sends the login notification email.
func (c *ResendClient) SendLoginNotification(params LoginParams) error {
	content := templates.GetLoginEmailContent(templates.LoginEmailProps{
		Name:     params.FromName,
		Email:    params.FromEmail,
		Phone:    params.Phone,
		Location: params.Location,
	})

	return c.send("New login: "+params.FromName, content, nil)
}

// SendReportNotification composes and sends the report notification email,
// attaching the photo when one was uploaded.
func (c *ResendClient) SendReportNotification(params ReportParams) error {
	content := templates.GetReportEmailContent(templates.ReportEmailProps{
		Name:        params.FromName,
		Email:       params.FromEmail,
		IssueType:   params.IssueType,
		Location:    params.Location,
		Description: params.Description,
		Priority:    params.Priority,
	})

	var attachments []resend.Attachment
	if params.Attachment != nil {
		attachments = append(attachments, resend.Attachment{
			Filename: params.Attachment.Filename,
			Content:  params.Attachment.Content,
		})
	}

	subject := fmt.Sprintf("New report: %s (%s)", params.IssueType, params.Priority)
	return c.send(subject, content, attachments)
}

// SendCampaignJoinNotification composes and sends the campaign-join notification email.
func (c *ResendClient) SendCampaignJoinNotification(params CampaignJoinParams) error {
	content := templates.GetCampaignEmailContent(templates.CampaignEmailProps{
		Name:         params.FromName,
		Email:        params.FromEmail,
		CampaignName: params.CampaignName,
		Location:     params.Location,
	})

	return c.send("Campaign joined: "+params.CampaignName, content, nil)
}

func (c *ResendClient) send(subject, content string, attachments []resend.Attachment) error {
	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Content: content,
	})

	request := &resend.SendEmailRequest{
		From:        fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:          []string{c.inbox},
		Subject:     subject,
		Html:        htmlContent,
		Attachments: attachments,
	}

	_, err := c.client.Emails.Send(request)
	if err != nil {
		return fmt.Errorf("failed to send notification email via Resend: %w", err)
	}

	return nil
}

// Disabled is a Service that rejects every send. It stands in when no email
// provider is configured so the primary actions keep working.
type Disabled struct{}

func (Disabled) SendLoginNotification(LoginParams) error               { return ErrSenderDisabled }
func (Disabled) SendReportNotification(ReportParams) error             { return ErrSenderDisabled }
func (Disabled) SendCampaignJoinNotification(CampaignJoinParams) error { return ErrSenderDisabled }
