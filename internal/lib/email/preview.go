package email

// PreviewData contains sample template data for local preview/testing.
//
// It maps templateName -> (templateVariableName -> exampleValue).
var PreviewData = map[string]map[string]string{
	"confirmation": {
		"ClientName":      "Bruce Wayne",
		"ReservationTime": "2026-09-12T19:30:00Z",
		"PartySize":       "4",
	},
}
