package sweetspot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/olindgren/golfstar-booker/models"
)

// CourseQuery controls a catalog listing.
type CourseQuery struct {
	Search     string
	OrderBy    string // field to order by, defaults to "name"
	Descending bool
	Limit      int
	Page       int
}

// ListCourses fetches the course catalog for the configured club. Records
// that fail validation are logged and skipped; a failing request is returned
// as is, since without the catalog nothing downstream can run.
func (c *Client) ListCourses(ctx context.Context, q CourseQuery) ([]models.Course, error) {
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "name"
	}
	direction := "asc"
	if q.Descending {
		direction = "desc"
	}

	params := url.Values{}
	params.Set("club.id", c.cfg.ClubID)
	params.Set(fmt.Sprintf("order[%s]", orderBy), direction)
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	body, err := c.get(ctx, "/courses", params)
	if err != nil {
		return nil, err
	}

	var courses []models.Course
	if err := json.Unmarshal(body, &courses); err != nil {
		return nil, &TransportError{Endpoint: "/courses", Err: errors.Wrap(err, "decoding course list")}
	}

	valid := courses[:0]
	for _, course := range courses {
		if err := course.Validate(); err != nil {
			verr := &ValidationError{Record: course.UUID, Err: err}
			c.logger.Warn("skipping invalid course record", "error", verr)
			continue
		}
		valid = append(valid, course)
	}
	return valid, nil
}

// CourseSelection names the courses an availability check should cover.
// IDs and Names accumulate; All short-circuits both.
type CourseSelection struct {
	IDs   []int
	Names []string // case-insensitive name fragments
	All   bool
}

// SelectCourses resolves a selection against the catalog. Unmatched ids or
// name fragments are logged as warnings, not errors: the call returns
// whatever did match, deduplicated in first-seen order.
func SelectCourses(catalog []models.Course, sel CourseSelection, logger *slog.Logger) ([]models.Course, error) {
	if !sel.All && len(sel.IDs) == 0 && len(sel.Names) == 0 {
		return nil, &ConfigurationError{Reason: "no course selector given: use ids, names, or all"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if sel.All {
		return catalog, nil
	}

	var picked []models.Course
	for _, id := range sel.IDs {
		found := false
		for _, course := range catalog {
			if course.ID == id {
				picked = append(picked, course)
				found = true
				break
			}
		}
		if !found {
			logger.Warn("course id not found", "id", id)
		}
	}
	for _, fragment := range sel.Names {
		matched := false
		for _, course := range catalog {
			if strings.Contains(strings.ToLower(course.Name), strings.ToLower(fragment)) {
				picked = append(picked, course)
				matched = true
			}
		}
		if !matched {
			logger.Warn("no courses match name", "name", fragment)
		}
	}

	seen := make(map[int]bool, len(picked))
	unique := picked[:0]
	for _, course := range picked {
		if seen[course.ID] {
			continue
		}
		seen[course.ID] = true
		unique = append(unique, course)
	}
	return unique, nil
}
