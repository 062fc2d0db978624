package repository

import "time"

// Person is a client known to the service. The version column backs
// optimistic concurrency: every update must carry the version it read.
type Person struct {
	ID      int64
	Version int32
	Name    string
	Email   string
}

// Reservation is a booking row. StartTime is a pointer because the
// column is nullable; creation enforces presence at the API layer.
type Reservation struct {
	ID        int64
	Version   int32
	ClientID  int64
	StartTime *time.Time
	PartySize int
	Note      string
}

// ReservationSummary is the abstract list view: reservation fields
// joined with the client's name only.
type ReservationSummary struct {
	ID        int64
	Name      string
	PartySize int
	StartTime *time.Time
}

// ReservationDetail is the full single-reservation view, including the
// client's email and the row version.
type ReservationDetail struct {
	ID        int64
	Version   int32
	Name      string
	Email     string
	PartySize int
	StartTime *time.Time
	Note      string
}

// CreateReservationParams carries everything needed to create a
// reservation, including the identity used to find or create the client.
type CreateReservationParams struct {
	Name      string
	Email     string
	StartTime time.Time
	PartySize int
	Note      string
}

// UpdateReservationParams carries a full reservation update guarded by
// the version the client read.
type UpdateReservationParams struct {
	ID        int64
	Version   int32
	StartTime time.Time
	PartySize int
	Note      string
}
