package appointment

import "time"

type AvailabilityInput struct {
	BarbeariaID    uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
