package email

// PreviewData holds sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateNewLead: LeadEmailData{
		LeadID:      "3f1c2a9e-7b6d-4c1e-9a52-0d4b8e6f1a27",
		Name:        "Ján Novák",
		Clinic:      "Zubná ambulancia",
		Email:       "jan@example.com",
		Phone:       "+421900123456",
		Practice:    "Stomatológia",
		Message:     "Dobrý deň,\nmali by sme záujem o novú webstránku.",
		Marketing:   true,
		SubmittedAt: "18.10.2026 10:30",
	},
}
