package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Open Trivia Database endpoint.
const DefaultBaseURL = "https://opentdb.com/"

const maxBodyBytes = 1 << 20

// Client talks to the Open Trivia Database HTTP API.
// Requests are never retried; the caller decides whether to try again.
type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ Provider       = (*Client)(nil)
	_ CategoryLister = (*Client)(nil)
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// NewClient creates a Client for the API rooted at baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type questionsResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

type rawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type categoriesResponse struct {
	TriviaCategories []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"trivia_categories"`
}

// Fetch requests p.Amount questions. A zero response code with no results
// is reported as ErrNoResults. Invalid entries are skipped; a batch with
// none valid is ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, p Params) ([]Question, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.get(ctx, "api.php", p.query())
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if err := validatePayload("questions", raw); err != nil {
		return nil, err
	}

	var resp questionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.ResponseCode != codeSuccess {
		return nil, &APIError{Code: resp.ResponseCode}
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}

	questions := make([]Question, 0, len(resp.Results))
	var firstBad *ValidationError
	for i, r := range resp.Results {
		q, err := NewQuestion(r.Question, r.CorrectAnswer, r.IncorrectAnswers,
			r.Category, Difficulty(r.Difficulty), QuestionType(r.Type))
		if err != nil {
			slog.Warn("skipping invalid question", "index", i, "error", err)
			if firstBad == nil {
				firstBad = &ValidationError{Index: i, Reason: err.Error()}
			}
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, firstBad)
	}

	slog.Debug("fetched questions", "count", len(questions), "category", p.Category,
		"difficulty", p.Difficulty, "type", p.Type)
	return questions, nil
}

// Categories returns the category list sorted by ID.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	raw, err := c.get(ctx, "api_category.php", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	if err := validatePayload("categories", raw); err != nil {
		return nil, err
	}

	var resp categoriesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	cats := make([]Category, 0, len(resp.TriviaCategories))
	for _, tc := range resp.TriviaCategories {
		cats = append(cats, Category{ID: tc.ID, Name: clean(tc.Name)})
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %w", ErrRateLimited, &HTTPError{StatusCode: resp.StatusCode, URL: u})
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: u}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// query builds the api.php query string, omitting unset filters.
func (p Params) query() url.Values {
	v := url.Values{}
	v.Set("amount", strconv.Itoa(p.Amount))
	if p.Category > 0 {
		v.Set("category", strconv.Itoa(p.Category))
	}
	if p.Difficulty != "" {
		v.Set("difficulty", string(p.Difficulty))
	}
	if p.Type != "" {
		v.Set("type", string(p.Type))
	}
	return v
}
