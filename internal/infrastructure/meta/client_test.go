package meta_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/meta"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) ports.MetaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return meta.NewClient("app-id", "app-secret", zerolog.Nop(), meta.WithBaseURL(srv.URL))
}

func TestExchangeLongLivedToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/access_token", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "fb_exchange_token", q.Get("grant_type"))
		assert.Equal(t, "app-id", q.Get("client_id"))
		assert.Equal(t, "short-token", q.Get("fb_exchange_token"))
		w.Write([]byte(`{"access_token":"long-token","token_type":"bearer","expires_in":5183944}`))
	}))

	token, err := client.ExchangeLongLivedToken(context.Background(), "short-token")
	require.NoError(t, err)
	assert.Equal(t, "long-token", token)
}

func TestExchangeLongLivedTokenUpstreamRejection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token."}}`))
	}))

	_, err := client.ExchangeLongLivedToken(context.Background(), "bad-token")
	var upstreamErr *domain.UpstreamAuthError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, domain.PlatformMetaAds, upstreamErr.Platform)
	assert.Contains(t, upstreamErr.Reason, "Invalid OAuth access token.")
}

func TestExchangeLongLivedTokenEmptyResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := client.ExchangeLongLivedToken(context.Background(), "short-token")
	var upstreamErr *domain.UpstreamAuthError
	require.ErrorAs(t, err, &upstreamErr)
}

func TestGetAccountIdentity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "long-token", r.URL.Query().Get("access_token"))
		w.Write([]byte(`{"id":"10158","name":"Jane Merchant"}`))
	}))

	identity, err := client.GetAccountIdentity(context.Background(), "long-token")
	require.NoError(t, err)
	assert.Equal(t, "10158", identity.ID)
	assert.Equal(t, "Jane Merchant", identity.Name)
}

func TestListAdAccounts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/adaccounts", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"id":"act_111","name":"Paused Account","account_status":2},
			{"id":"act_222","name":"Main Account","account_status":1}
		]}`))
	}))

	accounts, err := client.ListAdAccounts(context.Background(), "long-token")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "act_111", accounts[0].ID)
	assert.Equal(t, 2, accounts[0].Status)
	assert.Equal(t, "Main Account", accounts[1].Name)
	assert.Equal(t, 1, accounts[1].Status)
}

func TestGetDailyInsightsNormalization(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/act_123/insights", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "account", q.Get("level"))
		assert.Equal(t, "1", q.Get("time_increment"))
		assert.NotEmpty(t, q.Get("time_range"))
		w.Write([]byte(`{"data":[
			{
				"date_start":"2026-08-01",
				"spend":"100",
				"impressions":"5000",
				"clicks":"120",
				"ctr":"2.4",
				"cpc":"0.83",
				"cpm":"20",
				"action_values":[
					{"action_type":"add_to_cart","value":"900"},
					{"action_type":"purchase","value":"250"}
				]
			},
			{
				"date_start":"2026-08-02",
				"spend":"0",
				"impressions":"0",
				"clicks":"0"
			}
		]}`))
	}))

	insights := client.GetDailyInsights(context.Background(), "long-token", "123", 30)
	require.Len(t, insights, 2)

	first := insights[0]
	assert.Equal(t, "2026-08-01", first.Date.Format("2006-01-02"))
	assert.Equal(t, 100.0, first.Spend)
	assert.Equal(t, int64(5000), first.Impressions)
	assert.Equal(t, int64(120), first.Clicks)
	assert.Equal(t, 250.0, first.Revenue)
	assert.Equal(t, 2.5, first.ROAS)
	assert.Equal(t, 2.4, first.CTR)

	// Missing fields default to zero, and zero spend never divides
	second := insights[1]
	assert.Zero(t, second.Spend)
	assert.Zero(t, second.Revenue)
	assert.Zero(t, second.ROAS)
	assert.Zero(t, second.CPC)
}

func TestGetDailyInsightsROASRounding(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{
				"date_start":"2026-08-01",
				"spend":"3",
				"action_values":[{"action_type":"purchase","value":"10"}]
			}
		]}`))
	}))

	insights := client.GetDailyInsights(context.Background(), "long-token", "act_123", 30)
	require.Len(t, insights, 1)
	assert.Equal(t, 3.33, insights[0].ROAS)
}

func TestGetDailyInsightsDegradesToEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"An unknown error occurred"}}`))
	}))

	insights := client.GetDailyInsights(context.Background(), "long-token", "123", 30)
	assert.NotNil(t, insights)
	assert.Empty(t, insights)
}
