package codeforces

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/cp31-tracker/internal/httpx"
)

const userInfoOK = `{"status":"OK","result":[{"handle":"tourist","rating":3800,"maxRating":3979,
"rank":"legendary grandmaster","maxRank":"legendary grandmaster","avatar":"a.jpg","titlePhoto":"t.jpg"}]}`

const userStatusOK = `{"status":"OK","result":[
{"id":3,"contestId":4,"problem":{"contestId":4,"index":"A","name":"Watermelon","rating":800,"tags":["math"]},"verdict":"OK","programmingLanguage":"GNU C++17"},
{"id":2,"contestId":4,"problem":{"contestId":4,"index":"A","name":"Watermelon","rating":800,"tags":["math"]},"verdict":"WRONG_ANSWER","programmingLanguage":"Python 3"}
]}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Retry:   httpx.RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
	})
}

func TestFetchProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user.info", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tourist", r.URL.Query().Get("handles"))
		_, _ = io.WriteString(w, userInfoOK)
	})
	mux.HandleFunc("/user.status", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tourist", q.Get("handle"))
		assert.Equal(t, "1", q.Get("from"))
		assert.Equal(t, "1000", q.Get("count"))
		_, _ = io.WriteString(w, userStatusOK)
	})

	client := newTestClient(t, mux)

	profile, err := client.FetchProfile(context.Background(), "  tourist ")
	require.NoError(t, err)

	assert.Equal(t, "tourist", profile.Info.Handle)
	assert.Equal(t, 3800, profile.Info.Rating)
	assert.Equal(t, "t.jpg", profile.Info.Avatar)
	require.Len(t, profile.Submissions, 2)
	assert.Equal(t, []string{"4-A"}, profile.Stats.SolvedKeys)
	assert.Equal(t, 2, profile.Stats.TotalSubmissions)
}

func TestGetUserInfoDefaults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"OK","result":[{"handle":"newbie","avatar":"a.jpg"}]}`)
	}))

	info, err := client.GetUserInfo(context.Background(), "newbie")
	require.NoError(t, err)

	assert.Equal(t, 0, info.Rating)
	assert.Equal(t, 0, info.MaxRating)
	assert.Equal(t, "unrated", info.Rank)
	assert.Equal(t, "unrated", info.MaxRank)
	assert.Equal(t, "a.jpg", info.Avatar)
}

func TestUnknownHandle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"status":"FAILED","comment":"handles: User with handle nobody42 not found"}`)
	}))

	_, err := client.GetUserInfo(context.Background(), "nobody42")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "FAILED", apiErr.Status)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	assert.Contains(t, err.Error(), "nobody42 not found")
}

func TestFailedEnvelopeWithOKStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"FAILED","comment":"Call limit exceeded"}`)
	}))

	_, err := client.GetSubmissions(context.Background(), "tourist")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Call limit exceeded", apiErr.Comment)
}

func TestMalformedResponse(t *testing.T) {
	cases := map[string]string{
		"not json":     `<html>maintenance</html>`,
		"wrong shape":  `{"status":"OK","result":{"handle":"x"}}`,
		"empty result": `{"status":"OK","result":[]}`,
		"no result":    `{"status":"OK"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			}))

			_, err := client.GetUserInfo(context.Background(), "x")

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr), "got %v", err)
		})
	}
}

func TestEmptyHandle(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.FetchProfile(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyHandle)

	_, err = client.GetSubmissions(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyHandle)
}

func TestFetchProfileFailsWhenOneCallFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user.info", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, userInfoOK)
	})
	mux.HandleFunc("/user.status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := newTestClient(t, mux).FetchProfile(context.Background(), "tourist")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
}
