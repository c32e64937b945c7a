package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTitle_CopiesFields(t *testing.T) {
	rec := TitleRecord{
		Title:      "Inception",
		Year:       "2010",
		Runtime:    "148 min",
		Genre:      "Action, Adventure, Sci-Fi",
		Director:   "Christopher Nolan",
		ImdbRating: "8.8",
		Poster:     "https://m.media-amazon.com/images/M/inception.jpg",
	}

	got := NewTitle(rec)
	require.Equal(t, Title{
		Title:          "Inception",
		Year:           2010,
		RuntimeMinutes: 148,
		Genre:          "Action, Adventure, Sci-Fi",
		Director:       "Christopher Nolan",
		Rating:         "8.8",
		Poster:         "https://m.media-amazon.com/images/M/inception.jpg",
	}, got)
}

func TestNewTitle_NumericFieldsBestEffort(t *testing.T) {
	cases := []struct {
		name        string
		year        string
		runtime     string
		wantYear    int
		wantRuntime int
	}{
		{name: "empty", year: "", runtime: "", wantYear: 0, wantRuntime: 0},
		{name: "n/a", year: "N/A", runtime: "N/A", wantYear: 0, wantRuntime: 0},
		{name: "series range", year: "2008–2013", runtime: "49 min", wantYear: 2008, wantRuntime: 49},
		{name: "open range", year: "2019–", runtime: "1 min", wantYear: 2019, wantRuntime: 1},
		{name: "padded", year: " 1999 ", runtime: " 136 min", wantYear: 1999, wantRuntime: 136},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewTitle(TitleRecord{Year: tc.year, Runtime: tc.runtime})
			require.Equal(t, tc.wantYear, got.Year, "year")
			require.Equal(t, tc.wantRuntime, got.RuntimeMinutes, "runtime")
		})
	}
}

func TestTitleRecord_UnmarshalKeyMapping(t *testing.T) {
	body := `{"Title":"Inception","year":"2010","imdbRating":"8.8","Unknown":"x","Ratings":[{"Source":"Metacritic","Value":"74/100"}]}`

	var rec TitleRecord
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	require.Equal(t, "Inception", rec.Title)
	// key 匹配大小写不敏感。
	require.Equal(t, "2010", rec.Year)
	require.Equal(t, "8.8", rec.ImdbRating)
	require.Equal(t, []Rating{{Source: "Metacritic", Value: "74/100"}}, rec.Ratings)
	require.Empty(t, rec.Plot)
	require.True(t, rec.Found())
}

func TestTitleRecord_Found(t *testing.T) {
	require.True(t, TitleRecord{}.Found())
	require.True(t, TitleRecord{Response: "True"}.Found())
	require.False(t, TitleRecord{Response: "False", Error: "Movie not found!"}.Found())
	require.False(t, TitleRecord{Response: "false"}.Found())
}

func TestStringers_QuoteTitle(t *testing.T) {
	rec := TitleRecord{Title: "The Matrix", Year: "1999"}
	require.True(t, strings.HasPrefix(rec.String(), "TitleRecord{"))
	require.Contains(t, rec.String(), `Title="The Matrix"`)
	require.Contains(t, rec.String(), `Year="1999"`)
	require.NotContains(t, rec.String(), "Error=")

	tt := NewTitle(rec)
	require.Contains(t, tt.String(), `Title="The Matrix"`)
	require.Contains(t, tt.String(), "Year=1999")
}

func TestTitleRecord_StringQuotesRatings(t *testing.T) {
	rec := TitleRecord{Ratings: []Rating{
		{Source: "Internet Movie Database", Value: "8.7/10"},
		{Source: "Rotten Tomatoes", Value: "83%"},
	}}
	require.Contains(t, rec.String(), `Ratings=["Internet Movie Database":"8.7/10" "Rotten Tomatoes":"83%"]`)
	require.Contains(t, TitleRecord{}.String(), "Ratings=[]")
}
