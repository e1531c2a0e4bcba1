package models

// BusStatus mirrors the schedule board state of a bus.
type BusStatus string

const (
	BusScheduled BusStatus = "Scheduled"
	BusDeparted  BusStatus = "Departed"
	BusCancelled BusStatus = "Cancelled"
)

// SeatView is the read model of a seat under the active station filter.
type SeatView struct {
	Index    int       `json:"index"`
	Number   int       `json:"number"`
	IsWindow bool      `json:"is_window"`
	Occupied bool      `json:"occupied"`
	Selected bool      `json:"selected"`
	Active   *Booking  `json:"active_booking,omitempty"`
	Bookings []Booking `json:"bookings"`
}

// BusView is the read model of a bus under the active station filter.
type BusView struct {
	ID            string     `json:"id"`
	Route         string     `json:"route"`
	DepartureTime string     `json:"departure_time"`
	Status        BusStatus  `json:"status"`
	Capacity      int        `json:"capacity"`
	Occupancy     int        `json:"occupancy"`
	Seats         []SeatView `json:"seats,omitempty"`
}
