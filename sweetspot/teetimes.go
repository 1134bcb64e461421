package sweetspot

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/olindgren/golfstar-booker/models"
)

const (
	defaultLimit = 100
	defaultPage  = 1
)

// AvailabilityQuery describes one aggregated availability search. The window
// is half-open: [Start, End). Players is the minimum number of open slots a
// tee time must have to count.
type AvailabilityQuery struct {
	CourseUUIDs []string
	Start       time.Time
	End         time.Time
	Players     int
	Limit       int
	Page        int
}

func (q AvailabilityQuery) validate() error {
	if q.End.Before(q.Start) {
		return &ConfigurationError{Reason: "end of search window precedes start"}
	}
	return nil
}

// isoUTC formats a window bound the way the API expects it: second
// precision, UTC, Z suffix.
func isoUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// AvailableTeeTimes queries each requested course in turn and merges the
// results into one time-ascending list. A failing course is logged and
// contributes zero results; only a 401 aborts the whole search, since a
// missing token dooms every remaining query the same way. Competition slots
// and slots with fewer open positions than requested never make it into the
// result.
func (c *Client) AvailableTeeTimes(ctx context.Context, q AvailabilityQuery) ([]models.TeeTime, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	players := q.Players
	if players < 1 {
		players = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	page := q.Page
	if page <= 0 {
		page = defaultPage
	}

	var all []models.TeeTime
	for _, courseUUID := range q.CourseUUIDs {
		params := url.Values{}
		params.Set("from[after]", isoUTC(q.Start))
		params.Set("from[before]", isoUTC(q.End))
		params.Set("course.uuid", courseUUID)
		params.Set("available_slots[gte]", strconv.Itoa(players))
		params.Set("limit", strconv.Itoa(limit))
		params.Set("page", strconv.Itoa(page))
		params.Set("order[from]", "asc")

		body, err := c.get(ctx, "/tee-times", params)
		if err != nil {
			var authErr *AuthorizationError
			if errors.As(err, &authErr) {
				return nil, err
			}
			c.logger.Error("tee time query failed, skipping course", "course", courseUUID, "error", err)
			continue
		}

		records, err := decodeTeeTimeList(body)
		if err != nil {
			c.logger.Error("undecodable tee time response, skipping course", "course", courseUUID, "error", err)
			continue
		}

		for _, record := range records {
			teeTime, err := normalizeTeeTime(record, courseUUID)
			if err != nil {
				c.logger.Warn("skipping unparsable tee time", "course", courseUUID, "error", err)
				continue
			}
			if teeTime.AvailableSlots < players {
				continue
			}
			if isCompetitionTime(teeTime.Category) {
				c.logger.Debug("skipping competition tee time", "uuid", teeTime.UUID, "course", courseUUID)
				continue
			}
			all = append(all, teeTime)
		}
	}

	// Stable so equal start times keep per-course arrival order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].From.Before(all[j].From)
	})
	return all, nil
}

// AttachCourseInfo overwrites each tee time's embedded course reference with
// a projection of the matching catalog Course, upgrading the partial
// references the normalizer produces. Tee times whose uuid has no entry in
// byUUID keep the reference they already carry. Applying it twice with the
// same mapping changes nothing.
func AttachCourseInfo(teeTimes []models.TeeTime, byUUID map[string]models.Course) []models.TeeTime {
	for i, teeTime := range teeTimes {
		if teeTime.Course == nil {
			continue
		}
		course, ok := byUUID[teeTime.Course.UUID]
		if !ok {
			continue
		}
		teeTimes[i].Course = &models.TeeTimeCourse{
			ID:       course.ID,
			UUID:     course.UUID,
			Name:     course.Name,
			ClubName: course.Club.Name,
		}
	}
	return teeTimes
}
