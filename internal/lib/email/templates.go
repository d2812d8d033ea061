package email

import "embed"

// Template names an embedded HTML template under templates/.
type Template string

const (
	// TemplateNewLead is the internal notification sent for every stored lead.
	TemplateNewLead Template = "new_lead"
)

//go:embed templates/*.html
var templateFS embed.FS
