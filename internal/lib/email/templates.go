package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateConfirmation corresponds to templates/emails/confirmation.html
	TemplateConfirmation Template = "confirmation"
)
