package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Club represents the golf club that owns a course.
type Club struct {
	ID       int    `json:"id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	TermsURL string `json:"terms_url,omitempty"`
}

// Location represents geographic coordinates for a course.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Image represents a course image.
type Image struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Course represents a bookable golf course from the catalog endpoint.
type Course struct {
	ID                            int      `json:"id"`
	UUID                          string   `json:"uuid"`
	Club                          Club     `json:"club"`
	Name                          string   `json:"name"`
	Description                   string   `json:"description,omitempty"`
	Lonlat                        Location `json:"lonlat"`
	CustomEmailInformation        string   `json:"custom_email_information,omitempty"`
	ImportantBookingInformation   string   `json:"important_booking_information,omitempty"`
	BookingInformation            string   `json:"booking_information,omitempty"`
	BookingCancellationLimitHours int      `json:"booking_cancellation_limit_hours,omitempty"`
	IsActive                      bool     `json:"is_active"`
	State                         string   `json:"state"`
	Timezone                      string   `json:"timezone"`
	DisplayTeeTimeDays            int      `json:"display_tee_time_days"`
	Images                        []Image  `json:"images,omitempty"`
	Type                          string   `json:"type,omitempty"`
}

// Validate checks the fields the rest of the pipeline depends on. The uuid is
// the join key between the catalog and the tee-time endpoints, so it must be
// present and well formed.
func (c Course) Validate() error {
	if c.UUID == "" {
		return errors.New("course uuid is empty")
	}
	if _, err := uuid.Parse(c.UUID); err != nil {
		return errors.Wrapf(err, "course uuid %q", c.UUID)
	}
	if c.ID == 0 {
		return errors.Errorf("course %s has no id", c.UUID)
	}
	if c.Club.ID == 0 || c.Club.Name == "" {
		return errors.Errorf("course %s has no club", c.UUID)
	}
	return nil
}

// DisplayName returns the course name qualified by its club.
func (c Course) DisplayName() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Club.Name)
}

// Coordinates returns the course position as lat, lon.
func (c Course) Coordinates() (float64, float64) {
	return c.Lonlat.Lat, c.Lonlat.Lon
}
