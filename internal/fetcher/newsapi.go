package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ryosukesatoh/newsdigest/internal/config"
	"github.com/ryosukesatoh/newsdigest/internal/retry"
)

// NewsAPI response structures

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// NewsAPIFetcher searches the NewsAPI "everything" endpoint.
type NewsAPIFetcher struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	pageSize    int
	limiter     *rate.Limiter
	retryConfig retry.Config
}

func NewNewsAPIFetcher(cfg config.NewsAPIConfig) *NewsAPIFetcher {
	f := &NewsAPIFetcher{
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		pageSize: cfg.PageSize,
		retryConfig: retry.Config{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  1 * time.Second,
		},
	}
	if cfg.RequestsPerMinute > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}
	return f
}

func (f *NewsAPIFetcher) Fetch(ctx context.Context, topic, language string) ([]Article, error) {
	query := url.Values{}
	query.Set("q", topic)
	query.Set("language", language)
	query.Set("sortBy", "relevancy")
	if f.pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(f.pageSize))
	}
	query.Set("apiKey", f.apiKey)

	reqURL := fmt.Sprintf("%s?%s", f.baseURL, query.Encode())

	var body newsAPIResponse
	err := retry.WithBackoff(ctx, f.retryConfig, func(ctx context.Context) error {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		var err error
		body, err = f.do(ctx, reqURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if body.Status == "error" {
		return nil, fmt.Errorf("newsapi: %s: %s", body.Code, body.Message)
	}

	articles := make([]Article, 0, len(body.Articles))
	for _, a := range body.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}

	return articles, nil
}

func (f *NewsAPIFetcher) do(ctx context.Context, reqURL string) (newsAPIResponse, error) {
	var body newsAPIResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return body, fmt.Errorf("newsapi: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return body, fmt.Errorf("newsapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return body, fmt.Errorf("newsapi: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &retry.StatusError{Service: "newsapi", StatusCode: resp.StatusCode}
		// Error bodies carry {"status":"error","code":...,"message":...}.
		if json.Unmarshal(data, &body) == nil {
			statusErr.Message = body.Message
		}
		return newsAPIResponse{}, statusErr
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return body, fmt.Errorf("newsapi: failed to parse JSON: %w", err)
	}

	return body, nil
}
