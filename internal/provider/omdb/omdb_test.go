package omdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	providerx "github.com/John-Robertt/buscafilme/internal/provider"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "读取 fixture 失败")
	return b
}

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("http://www.omdbapi.com/", "3f05bd88", "Matrix")
	require.NoError(t, err)
	require.Equal(t, "http://www.omdbapi.com/?t=Matrix&apikey=3f05bd88", got)
}

func TestBuildURL_QueryRoundTrip(t *testing.T) {
	queries := []string{
		"",
		"The Matrix",
		"Amélie",
		"a&b=c",
		"100% Wolf",
		"  spaced  ",
		"O Auto da Compadecida?#1",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got, err := BuildURL("http://www.omdbapi.com/", "3f05bd88", q)
			require.NoError(t, err)

			u, err := url.Parse(got)
			require.NoError(t, err)
			vals, err := url.ParseQuery(u.RawQuery)
			require.NoError(t, err)
			require.Equal(t, []string{q}, vals["t"])
			require.Equal(t, "3f05bd88", vals.Get("apikey"))
			require.True(t, strings.HasPrefix(u.RawQuery, "t="), "t 参数应在最前：%s", u.RawQuery)
		})
	}
}

func TestBuildURL_KeepsBaseQuery(t *testing.T) {
	got, err := BuildURL("https://omdb.example.test/v1?plot=full", "k", "Up")
	require.NoError(t, err)
	require.Equal(t, "https://omdb.example.test/v1?plot=full&t=Up&apikey=k", got)
}

func TestBuildURL_InvalidBase(t *testing.T) {
	for _, base := range []string{"", "www.omdbapi.com", "ftp://www.omdbapi.com/", "http://[::1", "http:///nohost"} {
		t.Run(base, func(t *testing.T) {
			_, err := BuildURL(base, "k", "x")
			require.Error(t, err)
			require.True(t, providerx.IsArgument(err), "期望 ArgumentError，实际 %T: %v", err, err)
		})
	}
}

func TestRedactURL(t *testing.T) {
	require.Equal(t, "http://www.omdbapi.com/?t=Matrix&apikey=***", RedactURL("http://www.omdbapi.com/?t=Matrix&apikey=3f05bd88"))
}

func TestFetch_SendsSingleGET(t *testing.T) {
	body := readFixture(t, "matrix.json")

	var (
		calls  int
		gotReq *http.Request
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotReq = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	p := Provider{BaseURL: srv.URL + "/", APIKey: "3f05bd88"}
	got, reqURL, err := p.Fetch(context.Background(), "The Matrix", srv.Client())
	require.NoError(t, err)
	require.Equal(t, body, got)
	require.Equal(t, srv.URL+"/?t=The+Matrix&apikey=3f05bd88", reqURL)

	require.Equal(t, 1, calls)
	require.Equal(t, http.MethodGet, gotReq.Method)
	require.Equal(t, "The Matrix", gotReq.URL.Query().Get("t"))
	require.Equal(t, "3f05bd88", gotReq.URL.Query().Get("apikey"))
}

func TestFetch_InvalidBaseNoRequest(t *testing.T) {
	p := Provider{BaseURL: "omdbapi", APIKey: "k"}
	_, reqURL, err := p.Fetch(context.Background(), "x", http.DefaultClient)
	require.Error(t, err)
	require.Empty(t, reqURL)
	require.True(t, providerx.IsArgument(err))
}

func TestFetch_NilClient(t *testing.T) {
	_, _, err := Provider{BaseURL: "http://www.omdbapi.com/"}.Fetch(context.Background(), "x", nil)
	require.Error(t, err)
}

func TestFetch_StatusErrorJSONReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
	}))
	defer srv.Close()

	body, _, err := Provider{BaseURL: srv.URL, APIKey: "bad"}.Fetch(context.Background(), "x", srv.Client())
	require.Error(t, err)
	require.NotEmpty(t, body, "非 2xx 时也应返回 body")

	var se *providerx.HTTPStatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusUnauthorized, se.StatusCode)
	require.Equal(t, "Invalid API key!", se.Reason)
}

func TestFetch_StatusErrorHTMLReason(t *testing.T) {
	page := readFixture(t, "bad_gateway.html")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write(page)
	}))
	defer srv.Close()

	_, _, err := Provider{BaseURL: srv.URL, APIKey: "k"}.Fetch(context.Background(), "x", srv.Client())
	var se *providerx.HTTPStatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "502 Bad Gateway", se.Reason)
	require.Equal(t, "HTTP 502: 502 Bad Gateway", se.Error())
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, reqURL, err := Provider{BaseURL: base, APIKey: "secret-key-123"}.Fetch(context.Background(), "x", &http.Client{})
	require.Error(t, err)
	require.NotEmpty(t, reqURL)
	require.False(t, providerx.IsArgument(err))

	// 传输层错误的文本不能带出 apikey。
	require.NotContains(t, err.Error(), "secret-key-123")
	require.Contains(t, err.Error(), "apikey=***")
	var ue *url.Error
	require.True(t, errors.As(err, &ue))
}

func TestParse_Fixture(t *testing.T) {
	rec, err := Provider{}.Parse(readFixture(t, "matrix.json"))
	require.NoError(t, err)
	require.Equal(t, "The Matrix", rec.Title)
	require.Equal(t, "1999", rec.Year)
	require.Equal(t, "136 min", rec.Runtime)
	require.Equal(t, "8.7", rec.ImdbRating)
	require.Equal(t, "tt0133093", rec.ImdbID)
	require.Len(t, rec.Ratings, 3)
	require.Equal(t, "True", rec.Response)
}

func TestParse_Minimal(t *testing.T) {
	rec, err := Provider{}.Parse([]byte(`{"Title":"Inception"}`))
	require.NoError(t, err)
	require.Equal(t, "Inception", rec.Title)
	require.Empty(t, rec.Year)
}

func TestParse_NotFound(t *testing.T) {
	_, err := Provider{}.Parse(readFixture(t, "not_found.json"))
	var ae *providerx.APIError
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "Movie not found!", ae.Error())
}

func TestParse_Malformed(t *testing.T) {
	for _, body := range []string{"", "   ", "<html>oops</html>", `{"Title":`, `["x"]`} {
		_, err := Provider{}.Parse([]byte(body))
		require.Error(t, err, "body=%q", body)
	}
}

func TestErrorReason(t *testing.T) {
	require.Equal(t, "", errorReason(nil, ""))
	require.Equal(t, "Service Unavailable", errorReason([]byte("  Service   Unavailable \n"), "text/plain"))
	require.Equal(t, "Oops", errorReason([]byte("<html><body><h1>Oops</h1></body></html>"), ""))
	long := strings.Repeat("x", maxReasonLen+10)
	require.Equal(t, maxReasonLen+1, len([]rune(errorReason([]byte(long), "text/plain"))))
}
