package models

// UnknownPassenger is written on tickets finalized without a name.
const UnknownPassenger = "Unknown Passenger"

// Booking is one issued ticket held by a seat. Immutable once created.
type Booking struct {
	PassengerName string `json:"passenger_name"`
	PassengerID   string `json:"passenger_id,omitempty"`
	Pickup        string `json:"pickup_station"`
	DropOff       string `json:"drop_off_station"`
	TicketID      string `json:"ticket_id"`
	SeatNumber    int    `json:"seat_index"` // 1-based, as printed
	IsWindow      bool   `json:"is_window"`
}

// Ticket is the rendered view of a booking.
type Ticket struct {
	Booking
	BusID string `json:"bus_id"`
}

// SeatDraft carries the passenger details captured for one selected seat
// before the booking is finalized.
type SeatDraft struct {
	SeatIndex   int    `json:"seat_index"` // 0-based ledger index
	Name        string `json:"name"`
	PassengerID string `json:"passenger_id,omitempty"`
	Pickup      string `json:"pickup_station"`
	DropOff     string `json:"drop_off_station"`
}
