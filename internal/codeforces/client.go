package codeforces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/cp31-tracker/internal/httpx"
)

const (
	DefaultBaseURL = "https://codeforces.com/api"

	defaultSubmissionsCount = 1000
	unratedRank             = "unrated"
)

// Config configures a Client.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	SubmissionsCount int
	Retry            httpx.RetryPolicy
}

// Client talks to the public read-only Codeforces API.
type Client struct {
	baseURL    string
	count      int
	retry      httpx.RetryPolicy
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	count := cfg.SubmissionsCount
	if count <= 0 {
		count = defaultSubmissionsCount
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    base,
		count:      count,
		retry:      cfg.Retry,
		httpClient: httpx.NewClient(timeout),
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// rawUser mirrors user.info where most fields may be missing.
type rawUser struct {
	Handle                  string `json:"handle"`
	Rating                  *int   `json:"rating"`
	MaxRating               *int   `json:"maxRating"`
	Rank                    string `json:"rank"`
	MaxRank                 string `json:"maxRank"`
	Avatar                  string `json:"avatar"`
	TitlePhoto              string `json:"titlePhoto"`
	Contribution            int    `json:"contribution"`
	FriendOfCount           int    `json:"friendOfCount"`
	RegistrationTimeSeconds int64  `json:"registrationTimeSeconds"`
}

// GetUserInfo fetches the profile of handle.
func (c *Client) GetUserInfo(ctx context.Context, handle string) (UserInfo, error) {
	handle, err := normalizeHandle(handle)
	if err != nil {
		return UserInfo{}, err
	}

	const method = "user.info"
	var users []rawUser
	if err = c.call(ctx, method, url.Values{"handles": {handle}}, &users); err != nil {
		return UserInfo{}, err
	}
	if len(users) == 0 {
		return UserInfo{}, &DecodeError{Method: method, Err: errors.New("empty result")}
	}

	return users[0].toUserInfo(), nil
}

// GetSubmissions fetches the latest submissions of handle, newest first.
func (c *Client) GetSubmissions(ctx context.Context, handle string) ([]Submission, error) {
	handle, err := normalizeHandle(handle)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"handle": {handle},
		"from":   {"1"},
		"count":  {strconv.Itoa(c.count)},
	}

	var subs []Submission
	if err = c.call(ctx, "user.status", params, &subs); err != nil {
		return nil, err
	}

	return subs, nil
}

// FetchProfile loads profile and submissions concurrently and reduces them.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*Profile, error) {
	handle, err := normalizeHandle(handle)
	if err != nil {
		return nil, err
	}

	var (
		info UserInfo
		subs []Submission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = c.GetUserInfo(gctx, handle)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = c.GetSubmissions(gctx, handle)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return &Profile{
		Info:        info,
		Submissions: subs,
		Stats:       Reduce(subs),
	}, nil
}

// call performs GET <base>/<method>?<params> and decodes the envelope result into out.
func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	endpoint := c.baseURL + "/" + method + "?" + params.Encode()

	makeReq := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	// Codeforces answers 400 with a FAILED envelope for unknown handles.
	formatAPIError := func(status int, body []byte) error {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Status != "" {
			return &APIError{Method: method, HTTPStatus: status, Status: env.Status, Comment: env.Comment}
		}
		return &APIError{Method: method, HTTPStatus: status, Status: http.StatusText(status)}
	}

	resp, err := httpx.DoWithRetry(ctx, c.httpClient, c.retry, makeReq, formatAPIError)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	return decodeEnvelope(method, resp.StatusCode, body, out)
}

func decodeEnvelope(method string, httpStatus int, body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &DecodeError{Method: method, Err: err}
	}
	if env.Status != "OK" {
		return &APIError{Method: method, HTTPStatus: httpStatus, Status: env.Status, Comment: env.Comment}
	}
	if len(env.Result) == 0 {
		return &DecodeError{Method: method, Err: errors.New("missing result")}
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return &DecodeError{Method: method, Err: err}
	}
	return nil
}

func normalizeHandle(handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", ErrEmptyHandle
	}
	return handle, nil
}

func (u rawUser) toUserInfo() UserInfo {
	info := UserInfo{
		Handle:                  u.Handle,
		Rank:                    u.Rank,
		MaxRank:                 u.MaxRank,
		Avatar:                  u.TitlePhoto,
		Contribution:            u.Contribution,
		FriendOfCount:           u.FriendOfCount,
		RegistrationTimeSeconds: u.RegistrationTimeSeconds,
	}
	if u.Rating != nil {
		info.Rating = *u.Rating
	}
	if u.MaxRating != nil {
		info.MaxRating = *u.MaxRating
	}
	if info.Rank == "" {
		info.Rank = unratedRank
	}
	if info.MaxRank == "" {
		info.MaxRank = unratedRank
	}
	if info.Avatar == "" {
		info.Avatar = u.Avatar
	}
	return info
}
