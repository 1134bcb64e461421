package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/olindgren/golfstar-booker/models"
	"github.com/olindgren/golfstar-booker/sweetspot"
)

const usage = `golfstar-booker - find available tee times at Golfstar courses

Usage:
  golfstar-booker courses [-search TERM] [-sort FIELD] [-desc] [-limit N] [-page N]
  golfstar-booker course-info ID
  golfstar-booker availability [-ids 903,904] [-names Bromma,Bodaholm] [-all]
                               [-start "2025-01-15 08:00"] [-end "2025-01-15 12:00"]
                               [-players N] [-token TOKEN]

Dates are YYYY-MM-DD or "YYYY-MM-DD HH:MM", interpreted as Swedish local time.
A bearer token is read from GOLFSTAR_TOKEN (or a .env file) when not passed.
`

// All input times are Swedish local time, matching how the courses operate.
var stockholm = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		return time.UTC
	}
	return loc
}()

func init() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := newLogger()

	cfg, err := sweetspot.LoadConfig()
	if err != nil {
		color.Red("Invalid configuration: %v", err)
		os.Exit(1)
	}

	var runErr error
	switch os.Args[1] {
	case "courses":
		runErr = runCourses(cfg, logger, os.Args[2:])
	case "course-info":
		runErr = runCourseInfo(cfg, logger, os.Args[2:])
	case "availability":
		runErr = runAvailability(cfg, logger, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		color.Red("Unknown command: %s", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if runErr != nil {
		reportError(runErr)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("GOLFSTAR_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func reportError(err error) {
	var authErr *sweetspot.AuthorizationError
	if errors.As(err, &authErr) {
		color.Red("Error: authorization required.")
		fmt.Println("This endpoint needs a bearer token. Either:")
		fmt.Println("  1. set the GOLFSTAR_TOKEN environment variable, or")
		fmt.Println("  2. pass -token on the command line.")
		fmt.Println("The token can be copied from browser developer tools while")
		fmt.Println("logged in at book.sweetspot.io.")
		return
	}
	color.Red("Error: %v", err)
}

func runCourses(cfg sweetspot.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ExitOnError)
	search := fs.String("search", "", "filter courses by name")
	sortBy := fs.String("sort", "name", "field to sort by (name, id)")
	desc := fs.Bool("desc", false, "sort in descending order")
	limit := fs.Int("limit", 0, "max number of results")
	page := fs.Int("page", 0, "result page")
	fs.Parse(args)

	client := sweetspot.NewClient(cfg, logger)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Deadline)
	defer cancel()

	courses, err := client.ListCourses(ctx, sweetspot.CourseQuery{
		Search:     *search,
		OrderBy:    *sortBy,
		Descending: *desc,
		Limit:      *limit,
		Page:       *page,
	})
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		color.Yellow("No courses found matching your criteria.")
		return nil
	}

	renderCourses(courses)
	if *search != "" {
		fmt.Printf("\nFiltered by search term: %q\n", *search)
	}
	return nil
}

func runCourseInfo(cfg sweetspot.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("course-info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return &sweetspot.ConfigurationError{Reason: "course-info needs exactly one course id"}
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return &sweetspot.ConfigurationError{Reason: fmt.Sprintf("invalid course id %q", fs.Arg(0))}
	}

	client := sweetspot.NewClient(cfg, logger)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Deadline)
	defer cancel()

	courses, err := client.ListCourses(ctx, sweetspot.CourseQuery{})
	if err != nil {
		return err
	}
	for _, course := range courses {
		if course.ID == id {
			renderCourseInfo(course)
			return nil
		}
	}
	return &sweetspot.ConfigurationError{Reason: fmt.Sprintf("course with id %d not found", id)}
}

func runAvailability(cfg sweetspot.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ExitOnError)
	ids := fs.String("ids", "", "comma-separated course ids")
	names := fs.String("names", "", "comma-separated course name fragments")
	all := fs.Bool("all", false, "check every Golfstar course")
	start := fs.String("start", "", "start date/time")
	end := fs.String("end", "", "end date/time")
	players := fs.Int("players", 1, "number of players")
	token := fs.String("token", "", "bearer token, overrides GOLFSTAR_TOKEN")
	fs.Parse(args)

	if *token != "" {
		cfg.AuthToken = *token
	}

	sel := sweetspot.CourseSelection{All: *all, Names: splitList(*names)}
	var err error
	if sel.IDs, err = parseIDList(*ids); err != nil {
		return err
	}

	startAt, endAt, err := parseWindow(*start, *end)
	if err != nil {
		return err
	}

	client := sweetspot.NewClient(cfg, logger)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Deadline)
	defer cancel()

	catalog, err := client.ListCourses(ctx, sweetspot.CourseQuery{})
	if err != nil {
		return err
	}
	courses, err := sweetspot.SelectCourses(catalog, sel, logger)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		color.Red("No courses found matching your criteria")
		return nil
	}

	color.Cyan("Searching tee times at %d course(s), %s - %s, %d player(s)",
		len(courses),
		startAt.Format("Mon Jan 2 15:04"),
		endAt.Format("Mon Jan 2 15:04"),
		*players)

	uuids := make([]string, 0, len(courses))
	byUUID := make(map[string]models.Course, len(courses))
	for _, course := range courses {
		uuids = append(uuids, course.UUID)
		byUUID[course.UUID] = course
	}

	teeTimes, err := client.AvailableTeeTimes(ctx, sweetspot.AvailabilityQuery{
		CourseUUIDs: uuids,
		Start:       startAt,
		End:         endAt,
		Players:     *players,
	})
	if err != nil {
		return err
	}
	teeTimes = sweetspot.AttachCourseInfo(teeTimes, byUUID)

	if len(teeTimes) == 0 {
		color.Yellow("No available tee times found for your criteria.")
		return nil
	}
	renderAvailability(teeTimes, courses)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDList(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, &sweetspot.ConfigurationError{Reason: fmt.Sprintf("invalid course id %q", part)}
		}
		out = append(out, id)
	}
	return out, nil
}

// parseWindow turns the start/end arguments into a concrete search window.
// Defaults: start of today through end of the start day.
func parseWindow(start, end string) (time.Time, time.Time, error) {
	var startAt time.Time
	if start == "" {
		y, m, d := time.Now().In(stockholm).Date()
		startAt = time.Date(y, m, d, 0, 0, 0, 0, stockholm)
	} else {
		var err error
		if startAt, err = parseDateTime(start, false); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	var endAt time.Time
	if end == "" {
		y, m, d := startAt.In(stockholm).Date()
		endAt = time.Date(y, m, d, 23, 59, 59, 0, stockholm)
	} else {
		var err error
		if endAt, err = parseDateTime(end, true); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endAt.Before(startAt) {
		return time.Time{}, time.Time{}, &sweetspot.ConfigurationError{Reason: "end date must be after start date"}
	}
	return startAt, endAt, nil
}

// parseDateTime accepts YYYY-MM-DD or YYYY-MM-DD HH:MM in Swedish local
// time. Date-only values resolve to midnight, or end of day for the window
// end.
func parseDateTime(s string, endOfDay bool) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, stockholm); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, stockholm); err == nil {
		if endOfDay {
			return t.Add(23*time.Hour + 59*time.Minute + 59*time.Second), nil
		}
		return t, nil
	}
	return time.Time{}, &sweetspot.ConfigurationError{
		Reason: fmt.Sprintf("invalid date %q, use YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", s),
	}
}
