package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Times are displayed in Swedish local time; every Golfstar course plays in
// this zone even though the API speaks UTC.
var stockholm = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// Money represents a price as returned by the API. Amount keeps the raw JSON
// number so no precision is lost; Formatted is the vendor-formatted display
// string and wins when present.
type Money struct {
	Amount    json.Number `json:"amount,omitempty"`
	Currency  string      `json:"currency,omitempty"`
	Formatted string      `json:"formatted,omitempty"`
}

// TeeTimeCourse is the minimal course projection embedded in a TeeTime so
// consumers don't need the full Course object.
type TeeTimeCourse struct {
	ID       int    `json:"id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	ClubName string `json:"club_name,omitempty"`
}

// TeeTimeCategory carries the classification the API attaches to a slot.
// Description and CustomName are what identifies competition bookings.
type TeeTimeCategory struct {
	ID              int    `json:"id,omitempty"`
	UUID            string `json:"uuid,omitempty"`
	Name            string `json:"name,omitempty"`
	Description     string `json:"description,omitempty"`
	CustomName      string `json:"custom_name,omitempty"`
	TeeTimeBookable bool   `json:"tee_time_bookable,omitempty"`
}

// Space identifies a simulator bay or similar sub-resource of a course.
type Space struct {
	ID   int    `json:"id,omitempty"`
	UUID string `json:"uuid,omitempty"`
	Name string `json:"name,omitempty"`
}

// TeeTime represents one bookable time slot. The upstream does not guarantee
// AvailableSlots <= MaxSlots and violations are passed through untouched.
type TeeTime struct {
	ID                  int              `json:"id,omitempty"`
	UUID                string           `json:"uuid"`
	From                time.Time        `json:"from"`
	To                  time.Time        `json:"to,omitempty"`
	Interval            int              `json:"interval,omitempty"`
	AvailableSlots      int              `json:"available_slots"`
	MaxSlots            int              `json:"max_slots"`
	Price               *Money           `json:"price,omitempty"`
	PricePerExtraPlayer int              `json:"price_per_extra_player,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	IsPrimeTime         bool             `json:"is_prime_time,omitempty"`
	Category            *TeeTimeCategory `json:"category,omitempty"`
	Space               *Space           `json:"space,omitempty"`
	Course              *TeeTimeCourse   `json:"course,omitempty"`
}

// IsAvailable reports whether any slot is open.
func (t TeeTime) IsAvailable() bool {
	return t.AvailableSlots > 0
}

// TimeDisplay returns the start time rendered in Swedish local time.
func (t TeeTime) TimeDisplay() string {
	if t.From.IsZero() {
		return "N/A"
	}
	return t.From.In(stockholm).Format("15:04")
}

// DateKey returns the start date in Swedish local time, used for grouping.
func (t TeeTime) DateKey() string {
	if t.From.IsZero() {
		return ""
	}
	return t.From.In(stockholm).Format("2006-01-02")
}

// PriceDisplay prefers the vendor-formatted string, then falls back to
// amount plus currency. Prices default to SEK when the currency is missing.
func (t TeeTime) PriceDisplay() string {
	if t.Price == nil {
		return "N/A"
	}
	if t.Price.Formatted != "" {
		return t.Price.Formatted
	}
	if t.Price.Amount != "" {
		currency := t.Price.Currency
		if currency == "" {
			currency = "SEK"
		}
		return fmt.Sprintf("%s %s", t.Price.Amount, currency)
	}
	return "N/A"
}
