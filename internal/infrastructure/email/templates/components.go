// Package templates provides email template components
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// FieldProps is a single labeled row in a notification email.
type FieldProps struct {
	Label string
	Value string
}

var (
	layoutTemplate = template.Must(template.New("emailLayout").Parse(`<!DOCTYPE html>
<html>
  <body style="background-color: #f6f6f6; font-family: Helvetica, sans-serif; font-size: 16px; margin: 0; padding: 0;">
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%" style="border-collapse: separate; width: 100%;">
      <tbody>
        <tr>
          <td style="padding: 24px;">
            <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%" style="background: #ffffff; border-radius: 4px; max-width: 580px; margin: 0 auto;">
              <tbody>
                <tr>
                  <td style="padding: 24px;">{{.Content}}</td>
                </tr>
              </tbody>
            </table>
            <p style="color: #999999; font-size: 12px; text-align: center; margin-top: 16px;">Dreamers civic engagement</p>
          </td>
        </tr>
      </tbody>
    </table>
  </body>
</html>`))

	headingTemplate = template.Must(template.New("emailHeading").Parse(
		`<h2 style="font-family: Helvetica, sans-serif; font-size: 20px; font-weight: bold; margin: 0; margin-bottom: 16px;">{{.Text}}</h2>`))

	fieldTemplate = template.Must(template.New("emailField").Parse(
		`<p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 8px;"><strong>{{.Label}}:</strong> {{.Value}}</p>`))
)

// EmailLayoutProps wraps pre-rendered content in the shared outer layout.
type EmailLayoutProps struct {
	Content string
}

// GetEmailLayout renders the shared email chrome around the given content.
func GetEmailLayout(props EmailLayoutProps) string {
	var buf bytes.Buffer
	err := layoutTemplate.Execute(&buf, struct{ Content template.HTML }{
		Content: template.HTML(props.Content),
	})
	if err != nil {
		log.Printf("ERROR: Failed to render email layout: %v", err)
		return props.Content
	}
	return buf.String()
}

func renderHeading(text string) string {
	var buf bytes.Buffer
	if err := headingTemplate.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		log.Printf("ERROR: Failed to render email heading: %v", err)
		return ""
	}
	return buf.String()
}

func renderFields(fields []FieldProps) string {
	var buf bytes.Buffer
	for _, field := range fields {
		if field.Value == "" {
			continue
		}
		if err := fieldTemplate.Execute(&buf, field); err != nil {
			log.Printf("ERROR: Failed to render email field: %v", err)
		}
	}
	return buf.String()
}

// LoginEmailProps carries the login notification's named parameters.
type LoginEmailProps struct {
	Name     string
	Email    string
	Phone    string
	Location string
}

// GetLoginEmailContent renders the login notification body.
func GetLoginEmailContent(props LoginEmailProps) string {
	return renderHeading("New login") + renderFields([]FieldProps{
		{Label: "Name", Value: props.Name},
		{Label: "Email", Value: props.Email},
		{Label: "Phone", Value: props.Phone},
		{Label: "Location", Value: props.Location},
	})
}

// ReportEmailProps carries the report notification's named parameters.
type ReportEmailProps struct {
	Name        string
	Email       string
	IssueType   string
	Location    string
	Description string
	Priority    string
}

// GetReportEmailContent renders the report notification body.
func GetReportEmailContent(props ReportEmailProps) string {
	return renderHeading("New issue report") + renderFields([]FieldProps{
		{Label: "Name", Value: props.Name},
		{Label: "Email", Value: props.Email},
		{Label: "Issue type", Value: props.IssueType},
		{Label: "Location", Value: props.Location},
		{Label: "Description", Value: props.Description},
		{Label: "Priority", Value: props.Priority},
	})
}

// CampaignEmailProps carries the campaign-join notification's named parameters.
type CampaignEmailProps struct {
	Name         string
	Email        string
	CampaignName string
	Location     string
}

// GetCampaignEmailContent renders the campaign-join notification body.
func GetCampaignEmailContent(props CampaignEmailProps) string {
	return renderHeading("Campaign joined") + renderFields([]FieldProps{
		{Label: "Name", Value: props.Name},
		{Label: "Email", Value: props.Email},
		{Label: "Campaign", Value: props.CampaignName},
		{Label: "Location", Value: props.Location},
	})
}
