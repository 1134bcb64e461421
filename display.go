package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/olindgren/golfstar-booker/models"
)

func renderCourses(courses []models.Course) {
	color.Cyan("\nFound %d Golfstar courses", len(courses))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Club", "Active", "Booking Days"})

	for _, course := range courses {
		active := "yes"
		if !course.IsActive {
			active = "no"
		}
		table.Append([]string{
			strconv.Itoa(course.ID),
			course.Name,
			course.Club.Name,
			active,
			strconv.Itoa(course.DisplayTeeTimeDays),
		})
	}

	table.Render()
}

func renderCourseInfo(course models.Course) {
	color.Cyan("\n%s", course.DisplayName())
	if course.Description != "" {
		description := course.Description
		if len(description) > 200 {
			description = description[:200] + "..."
		}
		fmt.Println(description)
	}

	lat, lon := course.Coordinates()
	fmt.Printf("Location: %.4f, %.4f\n", lat, lon)
	fmt.Printf("Timezone: %s\n", course.Timezone)
	fmt.Printf("Book up to %d days in advance\n", course.DisplayTeeTimeDays)
	if course.BookingCancellationLimitHours > 0 {
		fmt.Printf("Cancel up to %d hours before\n", course.BookingCancellationLimitHours)
	}
	if course.IsActive {
		color.Green("Status: %s", course.State)
	} else {
		color.Red("Status: %s", course.State)
	}

	if course.BookingInformation != "" {
		color.Yellow("\nBooking information")
		fmt.Println(course.BookingInformation)
	}
	if course.CustomEmailInformation != "" {
		color.Yellow("\nImportant information")
		fmt.Println(course.CustomEmailInformation)
	}
}

// groupByCourse buckets tee times under the course name. Times arrive sorted
// from the aggregator and each bucket keeps that order.
func groupByCourse(teeTimes []models.TeeTime) map[string][]models.TeeTime {
	grouped := make(map[string][]models.TeeTime)
	for _, teeTime := range teeTimes {
		key := "Unknown Course"
		if teeTime.Course != nil && teeTime.Course.Name != "" {
			key = teeTime.Course.Name
		}
		grouped[key] = append(grouped[key], teeTime)
	}
	return grouped
}

func slotColor(slots int) *color.Color {
	switch {
	case slots >= 4:
		return color.New(color.FgHiGreen)
	case slots == 3:
		return color.New(color.FgCyan)
	case slots == 2:
		return color.New(color.FgYellow)
	case slots == 1:
		return color.New(color.FgHiRed)
	default:
		return color.New(color.FgRed)
	}
}

func renderAvailability(teeTimes []models.TeeTime, courses []models.Course) {
	grouped := groupByCourse(teeTimes)

	fmt.Printf("\nFound %d available tee times across %d courses searched\n",
		len(teeTimes), len(courses))

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		color.Cyan("\n%s", name)
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Date", "Time", "Available", "Price"})

		for _, teeTime := range grouped[name] {
			price := teeTime.PriceDisplay()
			if price == "N/A" {
				price = "-"
			}
			available := slotColor(teeTime.AvailableSlots).
				Sprintf("%d/%d", teeTime.AvailableSlots, teeTime.MaxSlots)
			table.Append([]string{teeTime.DateKey(), teeTime.TimeDisplay(), available, price})
		}

		table.Render()
	}

	fmt.Println("\nSlot colors: 4+ green, 3 cyan, 2 yellow, 1 red")
}
