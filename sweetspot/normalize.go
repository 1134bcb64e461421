package sweetspot

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/olindgren/golfstar-booker/models"
)

// competitionMarker is the Swedish word for competition. Slots blocked for
// organized play carry it in the category description ("Tävling bokad av ...")
// or the custom name ("Tävling").
const competitionMarker = "tävling"

// teeTimeEnvelope covers the paginated response shapes: depending on the
// endpoint mode the member list shows up under "hydra:member" or "items".
type teeTimeEnvelope struct {
	HydraMember []json.RawMessage `json:"hydra:member"`
	Items       []json.RawMessage `json:"items"`
}

// decodeTeeTimeList accepts either a bare JSON array of records or an
// envelope object and returns the raw records. An envelope without a known
// member key decodes to an empty list rather than an error.
func decodeTeeTimeList(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, errors.Wrap(err, "decoding tee time array")
		}
		return records, nil
	}
	var env teeTimeEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, errors.Wrap(err, "decoding tee time envelope")
	}
	if env.HydraMember != nil {
		return env.HydraMember, nil
	}
	return env.Items, nil
}

// rawTeeTime mirrors a single record on the wire. The embedded course stays
// raw because it may be absent, a full object with a nested club, or a stub
// carrying only a uuid.
type rawTeeTime struct {
	ID                  int                     `json:"id"`
	UUID                string                  `json:"uuid"`
	From                time.Time               `json:"from"`
	To                  time.Time               `json:"to"`
	Interval            int                     `json:"interval"`
	AvailableSlots      int                     `json:"available_slots"`
	MaxSlots            int                     `json:"max_slots"`
	Price               *models.Money           `json:"price"`
	PricePerExtraPlayer int                     `json:"price_per_extra_player"`
	Notes               string                  `json:"notes"`
	IsPrimeTime         bool                    `json:"is_prime_time"`
	Category            *models.TeeTimeCategory `json:"category"`
	Space               *models.Space           `json:"space"`
	Course              json.RawMessage         `json:"course"`
}

type rawCourseRef struct {
	ID   int    `json:"id"`
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Club struct {
		Name string `json:"name"`
	} `json:"club"`
}

// isCompetitionTime reports whether the category marks a slot as blocked for
// an organized competition. Matching is case-folded so "TÄVLING" counts too.
func isCompetitionTime(category *models.TeeTimeCategory) bool {
	if category == nil {
		return false
	}
	description := strings.ToLower(category.Description)
	customName := strings.ToLower(category.CustomName)
	return strings.Contains(description, competitionMarker) ||
		strings.Contains(customName, competitionMarker)
}

// normalizeTeeTime maps one raw record onto the domain model. courseUUID is
// the uuid the query was issued for; it backfills records whose embedded
// course reference is missing or partial.
func normalizeTeeTime(record json.RawMessage, courseUUID string) (models.TeeTime, error) {
	var raw rawTeeTime
	if err := json.Unmarshal(record, &raw); err != nil {
		return models.TeeTime{}, &ValidationError{Err: errors.Wrap(err, "decoding tee time record")}
	}
	if raw.UUID == "" {
		return models.TeeTime{}, &ValidationError{Err: errors.New("tee time record has no uuid")}
	}
	if raw.From.IsZero() {
		return models.TeeTime{}, &ValidationError{Record: raw.UUID, Err: errors.New("tee time record has no start time")}
	}

	course := &models.TeeTimeCourse{UUID: courseUUID}
	if courseObj := bytes.TrimSpace(raw.Course); len(courseObj) > 0 && courseObj[0] == '{' {
		var ref rawCourseRef
		if err := json.Unmarshal(courseObj, &ref); err != nil {
			return models.TeeTime{}, &ValidationError{Record: raw.UUID, Err: errors.Wrap(err, "decoding embedded course")}
		}
		course = &models.TeeTimeCourse{
			ID:       ref.ID,
			UUID:     ref.UUID,
			Name:     ref.Name,
			ClubName: ref.Club.Name,
		}
		if course.UUID == "" {
			course.UUID = courseUUID
		}
	}

	return models.TeeTime{
		ID:                  raw.ID,
		UUID:                raw.UUID,
		From:                raw.From,
		To:                  raw.To,
		Interval:            raw.Interval,
		AvailableSlots:      raw.AvailableSlots,
		MaxSlots:            raw.MaxSlots,
		Price:               raw.Price,
		PricePerExtraPlayer: raw.PricePerExtraPlayer,
		Notes:               raw.Notes,
		IsPrimeTime:         raw.IsPrimeTime,
		Category:            raw.Category,
		Space:               raw.Space,
		Course:              course,
	}, nil
}
