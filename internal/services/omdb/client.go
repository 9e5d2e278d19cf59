package omdb

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

	"github.com/buger/jsonparser"
	"golang.org/x/time/rate"

	"popcorn/internal/domain"
	"popcorn/internal/logger"
	"popcorn/internal/metrics"
)

const (
	opSearch = "search"
	opDetail = "detail"

	notAvailable = "N/A"
)

type searchResponse struct {
	Search []struct {
		ImdbID string `json:"imdbID"`
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		Poster string `json:"Poster"`
	} `json:"Search"`
}

type detailResponse struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
}

// Client talks to the OMDb HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg domain.Config) *Client {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (c *Client) SearchByTitle(ctx context.Context, query string) ([]domain.SearchResult, error) {
	const op = "omdb.SearchByTitle"
	started := time.Now()

	body, err := c.doRequest(ctx, op, url.Values{"s": {query}})
	if err != nil {
		metrics.ObserveLookup(opSearch, status(err), started)
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		err = fmt.Errorf("%s: %w: %v", op, domain.ErrParse, err)
		metrics.ObserveLookup(opSearch, status(err), started)
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(resp.Search))
	for i, item := range resp.Search {
		if item.ImdbID == "" || item.Title == "" {
			err := fmt.Errorf("%s: %w: result %d lacks imdbID or Title", op, domain.ErrParse, i)
			metrics.ObserveLookup(opSearch, status(err), started)
			return nil, err
		}
		results = append(results, domain.SearchResult{
			ID:        item.ImdbID,
			Title:     item.Title,
			Year:      item.Year,
			PosterURL: poster(item.Poster),
		})
	}
	if len(results) == 0 {
		err := fmt.Errorf("%s: %w: empty result set", op, domain.ErrNotFound)
		metrics.ObserveLookup(opSearch, status(err), started)
		return nil, err
	}

	metrics.ObserveLookup(opSearch, status(nil), started)
	logger.FromContext(ctx).Debug().Str("query", query).Int("results", len(results)).Msg("Search completed")
	return results, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (domain.MovieDetail, error) {
	const op = "omdb.GetByID"
	started := time.Now()

	body, err := c.doRequest(ctx, op, url.Values{"i": {id}})
	if err != nil {
		metrics.ObserveLookup(opDetail, status(err), started)
		return domain.MovieDetail{}, err
	}

	var resp detailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		err = fmt.Errorf("%s: %w: %v", op, domain.ErrParse, err)
		metrics.ObserveLookup(opDetail, status(err), started)
		return domain.MovieDetail{}, err
	}
	if resp.ImdbID == "" || resp.Title == "" {
		err := fmt.Errorf("%s: %w: detail for %q lacks imdbID or Title", op, domain.ErrParse, id)
		metrics.ObserveLookup(opDetail, status(err), started)
		return domain.MovieDetail{}, err
	}

	metrics.ObserveLookup(opDetail, status(nil), started)
	logger.FromContext(ctx).Debug().Str("id", id).Str("title", resp.Title).Msg("Detail fetched")
	return domain.MovieDetail{
		ID:             resp.ImdbID,
		Title:          resp.Title,
		Year:           resp.Year,
		PosterURL:      poster(resp.Poster),
		RuntimeMinutes: parseRuntime(resp.Runtime),
		IMDbRating:     parseRating(resp.ImdbRating),
		Plot:           resp.Plot,
		ReleaseDate:    resp.Released,
		Actors:         resp.Actors,
		Director:       resp.Director,
		Genre:          resp.Genre,
	}, nil
}

// doRequest performs one GET and returns the body of a logically
// successful response. "Response":"False" is reported as ErrNotFound even
// on HTTP 200.
func (c *Client) doRequest(ctx context.Context, op string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.requestError(ctx, op, err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: invalid base URL: %v", op, domain.ErrTransport, err)
	}
	query := u.Query()
	query.Set("apikey", c.apiKey)
	for key, values := range params {
		for _, v := range values {
			query.Set(key, v)
		}
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: failed to create request: %v", op, domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w: bad status %d", op, domain.ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.requestError(ctx, op, err)
	}

	flag, err := jsonparser.GetString(body, "Response")
	if err != nil {
		return nil, fmt.Errorf("%s: %w: missing Response field: %v", op, domain.ErrParse, err)
	}
	if strings.EqualFold(flag, "False") {
		reason, _ := jsonparser.GetString(body, "Error")
		logger.FromContext(ctx).Info().Str("reason", reason).Msg("Provider reported no match")
		return nil, fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, reason)
	}

	return body, nil
}

func (c *Client) requestError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrAborted, ctxErr)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrTransport, err)
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAborted):
		return "aborted"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrParse):
		return "parse_error"
	default:
		return "transport_error"
	}
}

func poster(raw string) string {
	if raw == notAvailable {
		return ""
	}
	return raw
}

// parseRuntime reads OMDb runtimes such as "148 min".
func parseRuntime(raw string) int {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0
	}
	minutes, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return minutes
}

func parseRating(raw string) float64 {
	if raw == "" || raw == notAvailable {
		return 0
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return rating
}
