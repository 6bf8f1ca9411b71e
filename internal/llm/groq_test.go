package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerWithoutAPIKey(t *testing.T) {
	c := New(Config{}, nil)
	assert.False(t, c.Available())

	got := c.Answer(context.Background(), "aphids in mustard", "English", "Spray neem oil.")
	assert.Contains(t, got, "GROQ_API_KEY")
	assert.Contains(t, got, "Offline Answer:\nSpray neem oil.")
}

func TestAnswerWithoutAPIKeyNoContext(t *testing.T) {
	c := New(Config{}, nil)
	got := c.Answer(context.Background(), "aphids in mustard", "English", "")
	assert.NotContains(t, got, "Offline Answer")
}

func TestAnswerForwardsCompletion(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Use neem oil at 5ml per litre."}}]}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.True(t, c.Available())

	got := c.Answer(context.Background(), "aphids in mustard", "Telugu", "Spray neem oil.")
	assert.Equal(t, "Use neem oil at 5ml per litre.", got)
	assert.Contains(t, gotBody, "Respond ONLY in Telugu")
	assert.Contains(t, gotBody, "[Reference data: Spray neem oil.]")
}

func TestAnswerTruncatesLongContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	long := strings.Repeat("a", 5000)
	got := c.Answer(context.Background(), "q", "", long)
	assert.Equal(t, "ok", got)
}

func TestAnswerFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "bad-key", BaseURL: srv.URL}, nil)
	got := c.Answer(context.Background(), "q", "English", "offline text")
	assert.Contains(t, got, "Invalid Groq API key")
	assert.Contains(t, got, "Offline Answer:\noffline text")
}

func TestAnswerFallsBackWhenUnreachable(t *testing.T) {
	// closed server simulates no connectivity
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	got := c.Answer(context.Background(), "q", "English", "offline text")
	assert.Contains(t, got, "Offline Answer:\noffline text")
}
