package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://newsapi.org/v2/everything"
	userAgent      = "TechPulse/1.0"
	requestTimeout = 10 * time.Second
)

// Article is one entry from the search response's articles array. Fields
// the API omits or nulls decode as empty strings.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      Source `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Description string `json:"description"`
}

type Source struct {
	Name string `json:"name"`
}

type searchResponse struct {
	Status   string    `json:"status"`
	Articles []Article `json:"articles"`
}

// Client issues search requests against the NewsAPI "everything" endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Search runs a single query and returns the decoded articles array.
// Results arrive newest-first; a response without an articles key yields
// an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("news API %d: %s", resp.StatusCode, string(b))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return sr.Articles, nil
}
