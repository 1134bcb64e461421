package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/olindgren/golfstar-booker/models"
)

func validCourse() models.Course {
	return models.Course{
		ID:   903,
		UUID: uuid.NewString(),
		Club: models.Club{ID: 275, UUID: uuid.NewString(), Name: "Golfstar Sverige", Slug: "golfstar"},
		Name: "Bromma",
		Lonlat: models.Location{
			Lat: 59.3626,
			Lon: 17.9466,
		},
		IsActive:           true,
		State:              "open",
		Timezone:           "Europe/Stockholm",
		DisplayTeeTimeDays: 14,
	}
}

func TestCourseValidate(t *testing.T) {
	require.NoError(t, validCourse().Validate())
}

func TestCourseValidate_MissingUUID(t *testing.T) {
	course := validCourse()
	course.UUID = ""
	require.Error(t, course.Validate())
}

func TestCourseValidate_MalformedUUID(t *testing.T) {
	course := validCourse()
	course.UUID = "not-a-uuid"
	require.Error(t, course.Validate())
}

func TestCourseValidate_MissingID(t *testing.T) {
	course := validCourse()
	course.ID = 0
	require.Error(t, course.Validate())
}

func TestCourseValidate_MissingClub(t *testing.T) {
	course := validCourse()
	course.Club = models.Club{}
	require.Error(t, course.Validate())
}

func TestCourseDisplayName(t *testing.T) {
	course := validCourse()
	require.Equal(t, "Bromma (Golfstar Sverige)", course.DisplayName())
}

func TestCourseCoordinates(t *testing.T) {
	lat, lon := validCourse().Coordinates()
	require.Equal(t, 59.3626, lat)
	require.Equal(t, 17.9466, lon)
}

func TestTeeTimeIsAvailable(t *testing.T) {
	require.True(t, models.TeeTime{AvailableSlots: 1}.IsAvailable())
	require.False(t, models.TeeTime{}.IsAvailable())
}

func TestTeeTimeTimeDisplay(t *testing.T) {
	// 07:00 UTC in January is 08:00 in Stockholm (CET).
	teeTime := models.TeeTime{From: time.Date(2025, 1, 15, 7, 0, 0, 0, time.UTC)}
	require.Equal(t, "08:00", teeTime.TimeDisplay())
	require.Equal(t, "2025-01-15", teeTime.DateKey())
}

func TestTeeTimeTimeDisplay_ZeroTime(t *testing.T) {
	require.Equal(t, "N/A", models.TeeTime{}.TimeDisplay())
	require.Equal(t, "", models.TeeTime{}.DateKey())
}

func TestTeeTimePriceDisplay(t *testing.T) {
	tests := []struct {
		name  string
		price *models.Money
		want  string
	}{
		{name: "no price", price: nil, want: "N/A"},
		{name: "formatted wins", price: &models.Money{Amount: "450", Currency: "SEK", Formatted: "450 kr"}, want: "450 kr"},
		{name: "amount and currency", price: &models.Money{Amount: "450.50", Currency: "EUR"}, want: "450.50 EUR"},
		{name: "currency defaults to SEK", price: &models.Money{Amount: "450"}, want: "450 SEK"},
		{name: "empty money", price: &models.Money{}, want: "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, models.TeeTime{Price: tt.price}.PriceDisplay())
		})
	}
}
