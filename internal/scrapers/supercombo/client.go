// Package supercombo fetches frame data pages from the supercombo wiki.
package supercombo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"framedata/internal/components/assert"
	"framedata/internal/components/chrono"
	"framedata/internal/components/telemetry"
	"framedata/internal/pagesource"
	"framedata/internal/roster"
	"framedata/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "https://wiki.supercombo.gg/w/Street_Fighter_6/"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl, the page of a character is
	// <BaseUrl><PageID>/Data.
	BaseUrl string
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64
	// RetryWait is the initial wait between retries, it defaults to 500ms.
	RetryWait time.Duration

	// Cache is optional, pages are cached for CacheTTL (defaults to a day).
	Cache    *badger.DB
	CacheTTL time.Duration
	// Clock decides when cached pages expire, it defaults to the wall clock.
	Clock chrono.API
}

// Client is a pagesource.Source for the supercombo wiki. It is safe for concurrent
// use, all requests share a single rate limiter.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	cache *pageCache
	tel   telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("supercombo_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if !strings.HasSuffix(opts.BaseUrl, "/") {
		opts.BaseUrl += "/"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 500 * time.Millisecond
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.Clock == nil {
		opts.Clock = chrono.StandardImpl{}
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetTimeout(time.Second * 30)

	httpClient.SetRetryCount(3)
	httpClient.SetRetryWaitTime(opts.RetryWait)
	httpClient.SetRetryMaxWaitTime(opts.RetryWait * 10)
	httpClient.AddRetryCondition(func(res *resty.Response, err error) bool {
		if res == nil {
			return false
		}
		return res.StatusCode() == http.StatusTooManyRequests || res.StatusCode() >= 500
	})

	// burst of at least 1 so no request is ever dropped
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), max(1, int(opts.RequestsPerSecond)))
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.InstrumentClient(httpClient, tracer, restyInstrumentOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    httpClient,
		tel:     tel,
	}
	if opts.Cache != nil {
		c.cache = &pageCache{
			db:    opts.Cache,
			ttl:   opts.CacheTTL,
			clock: opts.Clock,
		}
	}
	return c, nil
}

// PageUrl returns the frame data page of a character.
func (c *Client) PageUrl(character roster.Character) string {
	return c.BaseUrl.JoinPath(character.PageID, "Data").String()
}

// Fetch returns the HTML of a character's frame data page. Failures are
// *pagesource.FetchError: a 404 is NotFound, a 429 that outlasted the retries is
// RateLimited and everything else is Network.
func (c *Client) Fetch(ctx context.Context, character roster.Character) (string, error) {
	endpoint := c.PageUrl(character)
	fetchError := func(kind pagesource.FetchKind, err error) error {
		return &pagesource.FetchError{CharacterID: character.ID, Kind: kind, Err: err}
	}

	if c.cache != nil {
		page, err := c.cache.get(ctx, endpoint)
		if err == nil {
			c.tel.ReportDebug("cache hit", endpoint)
			return string(page.Contents), nil
		}
		if !errors.Is(err, errPageNotCached) {
			c.tel.ReportWarning(report_cache_get, err, endpoint)
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return "", fetchError(pagesource.Network, ctx.Err())
		}
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("fetch: %w", err), endpoint)
		return "", fetchError(pagesource.Network, err)
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return "", fetchError(pagesource.NotFound, fmt.Errorf("%s returned %s", endpoint, res.Status()))
	case res.StatusCode() == http.StatusTooManyRequests:
		c.tel.ReportWarning(report_client_fetch, "rate limited", endpoint)
		return "", fetchError(pagesource.RateLimited, fmt.Errorf("%s returned %s", endpoint, res.Status()))
	case res.IsError():
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("unexpected status %s", res.Status()), endpoint)
		return "", fetchError(pagesource.Network, fmt.Errorf("%s returned %s", endpoint, res.Status()))
	}

	body := res.Body()
	if c.cache != nil {
		err = c.cache.set(ctx, endpoint, body)
		if err != nil {
			c.tel.ReportWarning(report_cache_set, err, endpoint)
		}
	}
	return string(body), nil
}
