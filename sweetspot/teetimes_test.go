package sweetspot_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olindgren/golfstar-booker/models"
	"github.com/olindgren/golfstar-booker/sweetspot"
)

func testClient(t *testing.T, handler http.Handler) (*sweetspot.Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client := sweetspot.NewClient(sweetspot.Config{
		BaseURL: srv.URL,
		ClubID:  "275",
		Timeout: 5 * time.Second,
	}, logger)
	t.Cleanup(client.Close)
	return client, &logs
}

func TestAvailableTeeTimes_MergesAndSorts(t *testing.T) {
	responses := map[string]string{
		"course-a": `{"items": [
			{"uuid":"a1","from":"2025-01-15T07:00:00Z","available_slots":2,"max_slots":4},
			{"uuid":"a2","from":"2025-01-15T10:00:00Z","available_slots":4,"max_slots":4}
		]}`,
		"course-b": `[{"uuid":"b1","from":"2025-01-15T08:00:00Z","available_slots":1,"max_slots":4}]`,
	}
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tee-times", r.URL.Path)
		w.Write([]byte(responses[r.URL.Query().Get("course.uuid")]))
	}))

	teeTimes, err := client.AvailableTeeTimes(context.Background(), sweetspot.AvailabilityQuery{
		CourseUUIDs: []string{"course-a", "course-b"},
		Start:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, teeTimes, 3)
	require.Equal(t, []string{"a1", "b1", "a2"}, []string{teeTimes[0].UUID, teeTimes[1].UUID, teeTimes[2].UUID})
	for i := 1; i < len(teeTimes); i++ {
		require.False(t, teeTimes[i].From.Before(teeTimes[i-1].From))
	}
}

func TestAvailableTeeTimes_QueryParameters(t *testing.T) {
	var got map[string]string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"from[after]":          q.Get("from[after]"),
			"from[before]":         q.Get("from[before]"),
			"course.uuid":          q.Get("course.uuid"),
			"available_slots[gte]": q.Get("available_slots[gte]"),
			"limit":                q.Get("limit"),
			"page":                 q.Get("page"),
			"order[from]":          q.Get("order[from]"),
		}
		w.Write([]byte(`[]`))
	}))

	// Local-zone instants must be converted to UTC on the wire.
	cet := time.FixedZone("CET", 3600)
	_, err := client.AvailableTeeTimes(context.Background(), sweetspot.AvailabilityQuery{
		CourseUUIDs: []string{"course-a"},
		Start:       time.Date(2025, 1, 15, 8, 0, 0, 0, cet),
		End:         time.Date(2025, 1, 15, 12, 0, 0, 0, cet),
		Players:     3,
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"from[after]":          "2025-01-15T07:00:00Z",
		"from[before]":         "2025-01-15T11:00:00Z",
		"course.uuid":          "course-a",
		"available_slots[gte]": "3",
		"limit":                "100",
		"page":                 "1",
		"order[from]":          "asc",
	}, got)
}

func TestAvailableTeeTimes_CourseFailureIsolated(t *testing.T) {
	client, logs := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("course.uuid") == "course-a" {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[
			{"uuid":"b1","from":"2025-01-15T07:00:00Z","available_slots":2,"max_slots":4},
			{"uuid":"b2","from":"2025-01-15T07:10:00Z","available_slots":2,"max_slots":4},
			{"uuid":"b3","from":"2025-01-15T07:20:00Z","available_slots":2,"max_slots":4}
		]`))
	}))

	teeTimes, err := client.AvailableTeeTimes(context.Background(), sweetspot.AvailabilityQuery{
		CourseUUIDs: []string{"course-a", "course-b"},
		Start:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, teeTimes, 3)
	require.Contains(t, logs.String(), "skipping course")
}

func TestAvailableTeeTimes_AuthorizationError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "JWT Token not found", http.StatusUnauthorized)
	}))

	_, err := client.AvailableTeeTimes(context.Background(), sweetspot.AvailabilityQuery{
		CourseUUIDs: []string{"course-a"},
		Start:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	})
	var authErr *sweetspot.AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestAvailableTeeTimes_FiltersCompetitionAndPlayers(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"uuid":"open","from":"2025-01-15T07:00:00Z","available_slots":3,"max_slots":4},
			{"uuid":"too-few","from":"2025-01-15T07:10:00Z","available_slots":1,"max_slots":4},
			{"uuid":"competition","from":"2025-01-15T07:20:00Z","available_slots":4,"max_slots":4,
			 "category":{"custom_name":"Tävling"}},
			{"uuid":"broken","from":"not a timestamp","available_slots":4,"max_slots":4}
		]`))
	}))

	teeTimes, err := client.AvailableTeeTimes(context.Background(), sweetspot.AvailabilityQuery{
		CourseUUIDs: []string{"course-a"},
		Start:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
		Players:     2,
	})
	require.NoError(t, err)
	require.Len(t, teeTimes, 1)
	require.Equal(t, "open", teeTimes[0].UUID)
}

func TestAvailableTeeTimes_EndBeforeStart(t *testing.T) {
	requests := 0
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.AvailableTeeTimes(context.Background(), sweetspot.AvailabilityQuery{
		CourseUUIDs: []string{"course-a"},
		Start:       time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	var cfgErr *sweetspot.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Zero(t, requests)
}

func TestAvailableTeeTimes_NoCourses(t *testing.T) {
	requests := 0
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	teeTimes, err := client.AvailableTeeTimes(context.Background(), sweetspot.AvailabilityQuery{
		Start: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Empty(t, teeTimes)
	require.Zero(t, requests)
}

func TestAttachCourseInfo(t *testing.T) {
	course := models.Course{
		ID:   903,
		UUID: "course-a",
		Club: models.Club{ID: 275, Name: "Golfstar Sverige"},
		Name: "Bromma",
	}
	byUUID := map[string]models.Course{"course-a": course}

	teeTimes := []models.TeeTime{
		{UUID: "t1", Course: &models.TeeTimeCourse{UUID: "course-a"}},
		{UUID: "t2", Course: &models.TeeTimeCourse{UUID: "course-x", Name: "Partial"}},
		{UUID: "t3"},
	}

	enriched := sweetspot.AttachCourseInfo(teeTimes, byUUID)
	require.Equal(t, &models.TeeTimeCourse{ID: 903, UUID: "course-a", Name: "Bromma", ClubName: "Golfstar Sverige"}, enriched[0].Course)
	// No match: the partial reference stays exactly as produced.
	require.Equal(t, &models.TeeTimeCourse{UUID: "course-x", Name: "Partial"}, enriched[1].Course)
	require.Nil(t, enriched[2].Course)

	// Idempotent: a second pass changes nothing.
	again := sweetspot.AttachCourseInfo(enriched, byUUID)
	require.Equal(t, enriched, again)
}
