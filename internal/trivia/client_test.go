package trivia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, WithHTTPClient(srv.Client()))
}

func TestFetch_Success(t *testing.T) {
	var gotQuery string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{
			"response_code": 0,
			"results": [{
				"type": "multiple",
				"difficulty": "medium",
				"category": "Science &amp; Nature",
				"question": "What is the chemical symbol for &quot;gold&quot;?",
				"correct_answer": "Au",
				"incorrect_answers": ["Ag", "Gd", "Go"]
			}]
		}`))
	})

	qs, err := c.Fetch(context.Background(), Params{
		Amount:     1,
		Category:   17,
		Difficulty: DifficultyMedium,
		Type:       TypeMultiple,
	})
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, `What is the chemical symbol for "gold"?`, q.Prompt)
	assert.Equal(t, "Au", q.CorrectAnswer)
	assert.Equal(t, []string{"Ag", "Gd", "Go"}, q.Distractors)
	assert.Equal(t, "Science & Nature", q.Category)
	assert.Equal(t, 4, q.OptionCount())
	assert.Equal(t, "amount=1&category=17&difficulty=medium&type=multiple", gotQuery)
}

func TestFetch_OmitsUnsetFilters(t *testing.T) {
	var gotQuery string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"response_code":0,"results":[{"question":"Q","correct_answer":"True","incorrect_answers":["False"],"type":"boolean"}]}`))
	})

	_, err := c.Fetch(context.Background(), Params{Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, "amount=3", gotQuery)
}

func TestFetch_SkipsInvalidEntries(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"question":"","correct_answer":"A","incorrect_answers":["B"],"type":"multiple"},
			{"question":"Largest planet?","correct_answer":"Jupiter","incorrect_answers":["Mars","Venus","Earth"],"type":"multiple"},
			{"question":"Dup?","correct_answer":"X","incorrect_answers":["X"],"type":"multiple"}
		]}`))
	})

	qs, err := c.Fetch(context.Background(), Params{Amount: 3})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Largest planet?", qs[0].Prompt)
}

func TestFetch_ResponseCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"no results", `{"response_code":1,"results":[]}`, ErrNoResults},
		{"invalid parameter", `{"response_code":2,"results":[]}`, ErrInvalidParameter},
		{"rate limit", `{"response_code":5,"results":[]}`, ErrRateLimited},
		{"empty success", `{"response_code":0,"results":[]}`, ErrNoResults},
		{"missing code", `{"results":[]}`, ErrMalformedResponse},
		{"bad question", `{"response_code":0,"results":[{"question":"","correct_answer":"A","incorrect_answers":["B"]}]}`, ErrMalformedResponse},
		{"not json", `<html>`, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			qs, err := c.Fetch(context.Background(), Params{Amount: 5})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
			assert.Empty(t, qs)
		})
	}
}

func TestFetch_UnknownResponseCode(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":9}`))
	})
	_, err := c.Fetch(context.Background(), Params{Amount: 1})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 9, apiErr.Code)
}

func TestFetch_HTTPStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.Fetch(context.Background(), Params{Amount: 1})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
}

func TestFetch_InvalidParamsSkipRequest(t *testing.T) {
	called := false
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, p := range []Params{
		{Amount: 0},
		{Amount: 21},
		{Amount: 5, Difficulty: "extreme"},
		{Amount: 5, Type: "essay"},
		{Amount: 5, Category: -1},
	} {
		_, err := c.Fetch(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidParameter, "params %+v", p)
	}
	assert.False(t, called)
}

func TestCategories(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_category.php", r.URL.Path)
		_, _ = w.Write([]byte(`{"trivia_categories":[
			{"id":18,"name":"Science: Computers"},
			{"id":9,"name":"General Knowledge"},
			{"id":10,"name":"Entertainment: Books &amp; Comics"}
		]}`))
	})

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, Category{ID: 9, Name: "General Knowledge"}, cats[0])
	assert.Equal(t, "Entertainment: Books & Comics", cats[1].Name)
	assert.Equal(t, 18, cats[2].ID)
}

func TestCategories_Malformed(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"categories":[]}`))
	})
	_, err := c.Categories(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)

	c = NewClient("http://example.test/trivia")
	assert.Equal(t, "http://example.test/trivia/", c.baseURL)
}
