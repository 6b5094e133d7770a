package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SeasonType selects which numbering view of a series the API returns.
type SeasonType string

const (
	// SeasonTypeDefault is the conventional season/episode numbering view.
	SeasonTypeDefault SeasonType = "default"
	// SeasonTypeAbsolute is the single increasing count spanning the series.
	SeasonTypeAbsolute SeasonType = "absolute"
)

// maxEpisodePages bounds pagination against a misbehaving service.
const maxEpisodePages = 100

// Episode is one catalog record. The absolute and default views share ids
// but not index order.
type Episode struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	SeasonNumber   int    `json:"seasonNumber"`
	Number         int    `json:"number"`
	AbsoluteNumber int    `json:"absoluteNumber"`
	Aired          string `json:"aired"`
}

type loginRequest struct {
	APIKey string `json:"apikey"`
	PIN    string `json:"pin"`
}

type loginResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

type episodesResponse struct {
	Data struct {
		Episodes []Episode `json:"episodes"`
	} `json:"data"`
}

// Lister defines the catalog operations the resolver needs.
type Lister interface {
	FetchAllEpisodes(ctx context.Context, seriesID int64, seasonType SeasonType) ([]Episode, error)
}

// Client provides access to the TheTVDB v4 API.
type Client struct {
	apiKey     string
	pin        string
	baseURL    string
	language   string
	httpClient *http.Client
	token      string
}

var _ Lister = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TVDB client. Credentials are passed in explicitly; their
// lifecycle is the pipeline run, not the process.
func New(apiKey, pin, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tvdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		pin:        strings.TrimSpace(pin),
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) login(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	body, err := json.Marshal(loginRequest{APIKey: c.apiKey, PIN: c.pin})
	if err != nil {
		return fmt.Errorf("encode login request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tvdb login returned %d", resp.StatusCode)
	}
	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if payload.Data.Token == "" {
		return errors.New("tvdb login returned empty token")
	}
	c.token = payload.Data.Token
	return nil
}

// GetSeriesEpisodes fetches one page of the series episode listing in the
// requested numbering view.
func (c *Client) GetSeriesEpisodes(ctx context.Context, seriesID int64, seasonType SeasonType, page int) ([]Episode, error) {
	if err := c.login(ctx); err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(fmt.Sprintf("%s/series/%d/episodes/%s", c.baseURL, seriesID, seasonType))
	if err != nil {
		return nil, fmt.Errorf("parse tvdb url: %w", err)
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if c.language != "" {
		params.Set("lang", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tvdb episodes page %d returned %d", page, resp.StatusCode)
	}
	var payload episodesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode episodes response: %w", err)
	}
	return payload.Data.Episodes, nil
}

// FetchAllEpisodes retrieves the complete listing for one numbering view,
// paging until the first empty page, capped at maxEpisodePages.
func (c *Client) FetchAllEpisodes(ctx context.Context, seriesID int64, seasonType SeasonType) ([]Episode, error) {
	var all []Episode
	for page := 0; page < maxEpisodePages; page++ {
		episodes, err := c.GetSeriesEpisodes(ctx, seriesID, seasonType, page)
		if err != nil {
			return nil, err
		}
		if len(episodes) == 0 {
			break
		}
		all = append(all, episodes...)
	}
	return all, nil
}
