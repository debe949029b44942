// Package meta implements the Meta Graph API client used by the ads
// integration: token exchange, account discovery and daily insight retrieval.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
)

const defaultGraphURL = "https://graph.facebook.com/v19.0"

// insightFields is the field list requested per daily insight row
const insightFields = "account_id,account_name,spend,impressions,clicks,cpc,cpm,ctr,actions,action_values"

// Client talks to the Meta Graph API over HTTP
type Client struct {
	appID      string
	appSecret  string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures the client
type Option func(*Client)

// WithBaseURL overrides the Graph API base URL (tests)
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Meta Graph API client with a bounded request timeout so
// an unresponsive upstream cannot stall a sync batch indefinitely
func NewClient(appID, appSecret string, logger zerolog.Logger, opts ...Option) ports.MetaClient {
	c := &Client{
		appID:     appID,
		appSecret: appSecret,
		baseURL:   defaultGraphURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExchangeLongLivedToken trades a short-lived user token for a ~60 day token
func (c *Client) ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (string, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.get(ctx, "/oauth/access_token", params, &result); err != nil {
		return "", &domain.UpstreamAuthError{Platform: domain.PlatformMetaAds, Reason: err.Error()}
	}
	if result.AccessToken == "" {
		return "", &domain.UpstreamAuthError{Platform: domain.PlatformMetaAds, Reason: "token endpoint returned no access_token"}
	}
	return result.AccessToken, nil
}

// GetAccountIdentity validates a token and returns the platform user behind it
func (c *Client) GetAccountIdentity(ctx context.Context, accessToken string) (*ports.AccountIdentity, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("fields", "id,name")

	var result struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.get(ctx, "/me", params, &result); err != nil {
		return nil, &domain.UpstreamAuthError{Platform: domain.PlatformMetaAds, Reason: err.Error()}
	}
	return &ports.AccountIdentity{ID: result.ID, Name: result.Name}, nil
}

// ListAdAccounts lists ad accounts reachable by the token
func (c *Client) ListAdAccounts(ctx context.Context, accessToken string) ([]ports.AdAccount, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("fields", "id,name,account_status")

	var result struct {
		Data []struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			AccountStatus int    `json:"account_status"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/me/adaccounts", params, &result); err != nil {
		return nil, &domain.UpstreamAuthError{Platform: domain.PlatformMetaAds, Reason: err.Error()}
	}

	accounts := make([]ports.AdAccount, 0, len(result.Data))
	for _, acc := range result.Data {
		accounts = append(accounts, ports.AdAccount{ID: acc.ID, Name: acc.Name, Status: acc.AccountStatus})
	}
	return accounts, nil
}

// insightRow is the raw Graph API insight row. Numeric fields arrive as strings.
type insightRow struct {
	DateStart    string `json:"date_start"`
	Spend        string `json:"spend"`
	Impressions  string `json:"impressions"`
	Clicks       string `json:"clicks"`
	CTR          string `json:"ctr"`
	CPC          string `json:"cpc"`
	CPM          string `json:"cpm"`
	ActionValues []struct {
		ActionType string `json:"action_type"`
		Value      string `json:"value"`
	} `json:"action_values"`
}

// GetDailyInsights fetches a trailing window of daily account-level insights.
// Upstream failures degrade to an empty slice: a transient platform outage
// turns the caller's sync into a no-op for that run instead of aborting it.
// An empty result therefore means "nothing to upsert", not "zero activity".
func (c *Client) GetDailyInsights(ctx context.Context, accessToken, adAccountID string, windowDays int) []domain.DailyInsight {
	accountID := adAccountID
	if !strings.HasPrefix(accountID, "act_") {
		accountID = "act_" + accountID
	}

	now := time.Now().UTC()
	timeRange := fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		now.AddDate(0, 0, -windowDays).Format("2006-01-02"),
		now.Format("2006-01-02"),
	)

	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("level", "account")
	params.Set("fields", insightFields)
	params.Set("time_range", timeRange)
	params.Set("time_increment", "1")

	var result struct {
		Data []insightRow `json:"data"`
	}
	if err := c.get(ctx, "/"+accountID+"/insights", params, &result); err != nil {
		c.logger.Warn().
			Err(err).
			Str("adAccountId", accountID).
			Msg("Insights fetch failed, degrading to empty result")
		return []domain.DailyInsight{}
	}

	insights := make([]domain.DailyInsight, 0, len(result.Data))
	for _, row := range result.Data {
		insights = append(insights, normalizeInsight(row))
	}
	return insights
}

// normalizeInsight maps a raw Graph row into the normalized daily shape.
// Missing numeric fields default to 0 rather than propagating as nulls;
// revenue comes from the "purchase" action value; ROAS is revenue/spend
// rounded to 2 decimals, with spend 0 mapping to 0.
func normalizeInsight(row insightRow) domain.DailyInsight {
	date, _ := time.Parse("2006-01-02", row.DateStart)

	spend := parseFloat(row.Spend)
	revenue := 0.0
	for _, av := range row.ActionValues {
		if av.ActionType == "purchase" {
			revenue = parseFloat(av.Value)
			break
		}
	}

	roas := 0.0
	if spend > 0 {
		roas = math.Round(revenue/spend*100) / 100
	}

	return domain.DailyInsight{
		Date: date,
		AdsMetrics: domain.AdsMetrics{
			Spend:       spend,
			Impressions: parseInt(row.Impressions),
			Clicks:      parseInt(row.Clicks),
			Revenue:     revenue,
			ROAS:        roas,
			CTR:         parseFloat(row.CTR),
			CPC:         parseFloat(row.CPC),
			CPM:         parseFloat(row.CPM),
		},
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// get performs a GET against the Graph API and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("graph API returned status %d: %s", resp.StatusCode, graphErrorMessage(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// graphErrorMessage pulls the error message out of a Graph API error body
func graphErrorMessage(body []byte) string {
	var wrapper struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Message != "" {
		return wrapper.Error.Message
	}
	return string(body)
}
