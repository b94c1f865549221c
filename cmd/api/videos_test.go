package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafizmfadli/go-video/internal/data"
)

const validCreateBody = `{"title":"string","author":"string","availableResolutions":["P2160"]}`

func createVideo(t *testing.T, ts *testServer, body string) data.Video {
	t.Helper()

	rs := ts.post(t, "/videos", body)
	require.Equal(t, http.StatusCreated, rs.status, string(rs.body))
	return decodeBody[data.Video](t, rs)
}

func listVideos(t *testing.T, ts *testServer) []data.Video {
	t.Helper()

	rs := ts.get(t, "/videos")
	require.Equal(t, http.StatusOK, rs.status)
	return decodeBody[[]data.Video](t, rs)
}

func TestListVideos_Empty(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())

	rs := ts.get(t, "/videos")

	assert.Equal(t, http.StatusOK, rs.status)
	assert.Equal(t, "application/json", rs.header.Get("Content-Type"))
	assert.JSONEq(t, `[]`, string(rs.body))
}

func TestCreateVideo_InvalidBodies(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())
	require.Equal(t, http.StatusNoContent, ts.delete(t, "/testing/all-data").status)

	tests := []struct {
		name string
		body string
	}{
		{"nulls", `{"title":null,"author":null,"availableResolutions":null}`},
		{"too long and empty resolutions", `{"title":"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa","author":"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa","availableResolutions":""}`},
		{"numbers", `{"title":1,"author":1}`},
		{"no body", ``},
		{"malformed JSON", `{"title":`},
		{"not an object", `["title"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := ts.post(t, "/videos", tt.body)

			assert.Equal(t, http.StatusBadRequest, rs.status)
			assert.Equal(t, []string{"title", "author", "availableResolutions"}, errorFields(t, rs))
		})
	}

	assert.Empty(t, listVideos(t, ts))
}

func TestCreateVideo_ErrorEnvelopeShape(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())

	rs := ts.post(t, "/videos", `{"title":"t","author":"a","availableResolutions":["P144","P9000"]}`)

	assert.Equal(t, http.StatusBadRequest, rs.status)
	assert.JSONEq(t, `{"errorsMessages":[{"message":"Invalid resolution","field":"availableResolutions"}]}`, string(rs.body))
}

func TestCreateVideo_RoundTrip(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())

	created := createVideo(t, ts, `{"title":"Go videos","author":"Gopher","availableResolutions":["P144","P1080"]}`)

	assert.Positive(t, created.ID)
	assert.Equal(t, "Go videos", created.Title)
	assert.Equal(t, "Gopher", created.Author)
	assert.False(t, created.CanBeDownloaded)
	assert.Nil(t, created.MinAgeRestriction)
	assert.Equal(t, []data.Resolution{data.P144, data.P1080}, created.AvailableResolutions)
	assert.Equal(t, 24*time.Hour, created.PublicationDate.Sub(created.CreatedAt))
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Minute)

	rs := ts.get(t, fmt.Sprintf("/videos/%d", created.ID))
	require.Equal(t, http.StatusOK, rs.status)
	if diff := cmp.Diff(created, decodeBody[data.Video](t, rs)); diff != "" {
		t.Errorf("GET /videos/%d mismatch (-created +fetched):\n%s", created.ID, diff)
	}

	// minAgeRestriction is serialised as an explicit null.
	fetched := decodeBody[map[string]any](t, rs)
	assert.Contains(t, fetched, "minAgeRestriction")
	assert.Nil(t, fetched["minAgeRestriction"])
}

func TestCreateVideo_LocationHeader(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())

	rs := ts.post(t, "/videos", validCreateBody)
	require.Equal(t, http.StatusCreated, rs.status)

	video := decodeBody[data.Video](t, rs)
	assert.Equal(t, fmt.Sprintf("/videos/%d", video.ID), rs.header.Get("Location"))
}

func TestCreateVideo_UniqueIDs(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		v := createVideo(t, ts, validCreateBody)
		assert.False(t, seen[v.ID], "duplicate id %d", v.ID)
		seen[v.ID] = true
	}
	assert.Len(t, listVideos(t, ts), 50)
}

func TestShowVideo_NotFound(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())
	createVideo(t, ts, validCreateBody)

	for _, path := range []string{"/videos/999", "/videos/abc", "/videos/-1", "/videos/0", "/videos/1.5"} {
		rs := ts.get(t, path)
		assert.Equal(t, http.StatusNotFound, rs.status, path)
		assert.Empty(t, rs.body, path)
	}
}

func TestUpdateVideo(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())
	created := createVideo(t, ts, validCreateBody)
	path := fmt.Sprintf("/videos/%d", created.ID)

	rs := ts.put(t, path, `{"title":"Updated","author":"Someone else","availableResolutions":["P720","P480"],"canBeDownloaded":true,"minAgeRestriction":16,"publicationDate":"2030-01-02T03:04:05.000Z"}`)
	require.Equal(t, http.StatusNoContent, rs.status)
	assert.Empty(t, rs.body)

	age := 16
	want := data.Video{
		ID:                   created.ID,
		Title:                "Updated",
		Author:               "Someone else",
		CanBeDownloaded:      true,
		MinAgeRestriction:    &age,
		CreatedAt:            created.CreatedAt,
		PublicationDate:      time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
		AvailableResolutions: []data.Resolution{data.P720, data.P480},
	}

	got := ts.get(t, path)
	require.Equal(t, http.StatusOK, got.status)
	if diff := cmp.Diff(want, decodeBody[data.Video](t, got)); diff != "" {
		t.Errorf("video after update mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateVideo_Errors(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())
	created := createVideo(t, ts, validCreateBody)
	path := fmt.Sprintf("/videos/%d", created.ID)

	valid := `{"title":"t","author":"a","availableResolutions":["P144"],"canBeDownloaded":false,"minAgeRestriction":null,"publicationDate":"2030-01-01T00:00:00Z"}`

	t.Run("invalid payload lists every failing field", func(t *testing.T) {
		rs := ts.put(t, path, `{"title":"   ","author":5,"availableResolutions":[],"canBeDownloaded":"no","minAgeRestriction":40,"publicationDate":""}`)

		assert.Equal(t, http.StatusBadRequest, rs.status)
		assert.Equal(t, []string{"title", "author", "availableResolutions", "canBeDownloaded", "minAgeRestriction", "publicationDate"}, errorFields(t, rs))
	})

	t.Run("failed update changes nothing", func(t *testing.T) {
		rs := ts.put(t, path, `{"title":"changed","author":"a","availableResolutions":["P144"],"canBeDownloaded":"no","publicationDate":"2030-01-01T00:00:00Z"}`)
		require.Equal(t, http.StatusBadRequest, rs.status)

		got := decodeBody[data.Video](t, ts.get(t, path))
		if diff := cmp.Diff(created, got); diff != "" {
			t.Errorf("video changed by failed update (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rs := ts.put(t, "/videos/999", valid)
		assert.Equal(t, http.StatusNotFound, rs.status)
		assert.Empty(t, rs.body)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, ts.put(t, "/videos/abc", valid).status)
	})

	t.Run("validation wins over not found", func(t *testing.T) {
		rs := ts.put(t, "/videos/999", `{}`)
		assert.Equal(t, http.StatusBadRequest, rs.status)
	})
}

func TestDeleteVideo(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())
	first := createVideo(t, ts, validCreateBody)
	second := createVideo(t, ts, validCreateBody)

	rs := ts.delete(t, fmt.Sprintf("/videos/%d", first.ID))
	assert.Equal(t, http.StatusNoContent, rs.status)
	assert.Empty(t, rs.body)

	assert.Equal(t, http.StatusNotFound, ts.get(t, fmt.Sprintf("/videos/%d", first.ID)).status)
	assert.Equal(t, http.StatusNotFound, ts.delete(t, fmt.Sprintf("/videos/%d", first.ID)).status)
	assert.Equal(t, http.StatusNotFound, ts.delete(t, "/videos/abc").status)

	videos := listVideos(t, ts)
	require.Len(t, videos, 1)
	assert.Equal(t, second.ID, videos[0].ID)

	// Ids are not handed out again.
	third := createVideo(t, ts, validCreateBody)
	assert.Greater(t, third.ID, second.ID)
}

func TestDeleteAllData(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "development").routes())
	for i := 0; i < 3; i++ {
		createVideo(t, ts, validCreateBody)
	}

	rs := ts.delete(t, "/testing/all-data")
	assert.Equal(t, http.StatusNoContent, rs.status)
	assert.Empty(t, rs.body)
	assert.Empty(t, listVideos(t, ts))

	// Clearing an empty store is fine too.
	assert.Equal(t, http.StatusNoContent, ts.delete(t, "/testing/all-data").status)
}

func TestDeleteAllData_NotRoutedInProduction(t *testing.T) {
	ts := newTestServer(t, newTestApplication(t, "production").routes())
	createVideo(t, ts, validCreateBody)

	assert.Equal(t, http.StatusNotFound, ts.delete(t, "/testing/all-data").status)
	assert.Len(t, listVideos(t, ts), 1)
}
