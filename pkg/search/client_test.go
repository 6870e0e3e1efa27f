package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"chogscraper/pkg/config"
	"chogscraper/pkg/errors"
	"chogscraper/pkg/logger"
	"chogscraper/pkg/models"
	"chogscraper/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *logger.TestLogger) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig().Search
	cfg.Endpoint = server.URL
	cfg.Timeout = 5 * time.Second

	log := logger.NewTestLogger()
	client := NewClient(&cfg, "", log)
	client.SetLimiter(ratelimit.NewTokenBucket(100, 0))
	return client, log
}

func collect(t *testing.T, client Service, query string) ([]Post, error) {
	t.Helper()
	var posts []Post
	for p, err := range client.Search(context.Background(), query) {
		if err != nil {
			return posts, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func TestGetSearchURL(t *testing.T) {
	assert.Equal(t, "http://x/search?q=%23chog+filter%3Aimages", GetSearchURL("http://x/", "#chog filter:images", ""))
	assert.Equal(t, "http://x/search?cursor=abc&q=%23chog", GetSearchURL("http://x", "#chog", "abc"))
}

func TestClientSearchFollowsCursor(t *testing.T) {
	var requests atomic.Int32
	var userAgent atomic.Value

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		userAgent.Store(r.Header.Get("User-Agent"))
		assert.Equal(t, SearchEndpoint, r.URL.Path)
		assert.Equal(t, "#chog filter:images", r.URL.Query().Get("q"))

		switch r.URL.Query().Get("cursor") {
		case "":
			w.Write([]byte(`{"posts":[{"id":1,"raw_content":"gm #chog","username":"alice",` +
				`"media":[{"type":"photo","url":"https://img/a.jpg"}]}],"next_cursor":"p2"}`))
		case "p2":
			w.Write([]byte(`{"posts":[{"id":"2","raw_content":"second","username":"bob","media":[]}],"next_cursor":""}`))
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	})

	posts, err := collect(t, client, "#chog filter:images")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, config.DefaultUserAgent, userAgent.Load())

	assert.Equal(t, models.PostID("1"), posts[0].ID)
	assert.Equal(t, "alice", posts[0].Username)
	require.Len(t, posts[0].Photos(), 1)
	assert.Equal(t, "https://img/a.jpg", posts[0].Photos()[0].URL)
	assert.Equal(t, models.PostID("2"), posts[1].ID)
	assert.Empty(t, posts[1].Photos())
}

func TestClientSearchStopsWhenConsumerStops(t *testing.T) {
	var requests atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		json.NewEncoder(w).Encode(searchResponse{
			Posts:      []Post{{ID: "1"}, {ID: "2"}},
			NextCursor: "more",
		})
	})

	for range client.Search(context.Background(), "#chog") {
		break
	}
	assert.Equal(t, int32(1), requests.Load())
}

func TestClientSearchRepeatedCursorEnds(t *testing.T) {
	var requests atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"posts":[{"id":"1"}],"next_cursor":"same"}`))
	})

	posts, err := collect(t, client, "#chog")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, int32(2), requests.Load())
}

func TestClientSearchErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantType errors.ErrorType
		wantCode int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantType: errors.ErrorTypeStatus,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantType: errors.ErrorTypeStatus,
			wantCode: http.StatusTooManyRequests,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"posts": [`))
			},
			wantType: errors.ErrorTypeParsing,
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, log := newTestClient(t, tt.handler)

			posts, err := collect(t, client, "#chog")
			require.Error(t, err)
			assert.Empty(t, posts)

			var searchErr *errors.Error
			require.ErrorAs(t, err, &searchErr)
			assert.Equal(t, tt.wantType, searchErr.Type)
			assert.Equal(t, tt.wantCode, searchErr.Code)
			assert.NotEmpty(t, log.GetMessagesByLevel("ERROR"))
		})
	}
}

func TestClientSearchNetworkError(t *testing.T) {
	cfg := config.DefaultConfig().Search
	cfg.Endpoint = "http://127.0.0.1:1"
	cfg.Timeout = time.Second

	client := NewClient(&cfg, "test-agent", logger.NewNopLogger())
	_, err := collect(t, client, "#chog")

	var searchErr *errors.Error
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, errors.ErrorTypeNetwork, searchErr.Type)
}

func TestClientSearchCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected after cancellation")
	})
	client.SetLimiter(ratelimit.NewTokenBucket(1, time.Hour))
	client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range client.Search(ctx, "#chog") {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, context.Canceled)
}

func TestStaticService(t *testing.T) {
	svc := &Static{
		Posts: []Post{{ID: "1"}, {ID: "2"}},
		Err:   errors.NewStatusError(http.StatusBadGateway, "http://x"),
	}

	posts, err := collect(t, svc, "ignored")
	assert.Len(t, posts, 2)
	assert.Equal(t, http.StatusBadGateway, errors.StatusCode(err))
}

func TestPostPhotos(t *testing.T) {
	p := Post{Media: []Media{
		{Type: MediaTypeVideo, URL: "https://v/1.mp4"},
		{Type: MediaTypePhoto, URL: "https://img/1.jpg"},
		{Type: MediaTypeAnimatedGIF, URL: "https://g/1.gif"},
		{Type: MediaTypePhoto, URL: ""},
		{Type: MediaTypePhoto, URL: "https://img/2.jpg"},
	}}

	photos := p.Photos()
	require.Len(t, photos, 2)
	assert.Equal(t, "https://img/1.jpg", photos[0].URL)
	assert.Equal(t, "https://img/2.jpg", photos[1].URL)
}
