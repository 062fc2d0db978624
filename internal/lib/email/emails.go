package email

import "strconv"

// SendReservationConfirmation sends a confirmation email for a freshly
// created reservation.
//
// The template data keys must match what the HTML template expects.
func (c *Client) SendReservationConfirmation(to, clientName, reservationTime string, partySize int) error {
	data := map[string]string{
		"ClientName":      clientName,
		"ReservationTime": reservationTime,
		"PartySize":       strconv.Itoa(partySize),
	}

	return c.SendEmail(
		to,
		"Your reservation is confirmed",
		TemplateConfirmation,
		data,
	)
}
