package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
)

// statusCacheTTL bounds staleness of the per-workspace status read
const statusCacheTTL = 30 * time.Second

// IntegrationService handles the connect / status / disconnect lifecycle of
// platform integrations
type IntegrationService struct {
	integrationRepo ports.IntegrationRepository
	vault           ports.EncryptionService
	metaClient      ports.MetaClient
	storeClient     ports.StoreClient
	syncService     *SyncService
	tasks           *TaskRunner
	cache           ports.Cache
	logger          zerolog.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(
	integrationRepo ports.IntegrationRepository,
	vault ports.EncryptionService,
	metaClient ports.MetaClient,
	storeClient ports.StoreClient,
	syncService *SyncService,
	tasks *TaskRunner,
	cache ports.Cache,
	logger zerolog.Logger,
) *IntegrationService {
	return &IntegrationService{
		integrationRepo: integrationRepo,
		vault:           vault,
		metaClient:      metaClient,
		storeClient:     storeClient,
		syncService:     syncService,
		tasks:           tasks,
		cache:           cache,
		logger:          logger,
	}
}

// selectAdAccount applies the connect-time account policy: prefer the first
// active account (status 1), fall back to the first account, fail when the
// list is empty.
func selectAdAccount(accounts []ports.AdAccount) (*ports.AdAccount, error) {
	if len(accounts) == 0 {
		return nil, domain.ErrNoAdAccount
	}
	for i := range accounts {
		if accounts[i].Status == 1 {
			return &accounts[i], nil
		}
	}
	return &accounts[0], nil
}

// ConnectMeta exchanges the short-lived user token, auto-selects an ad
// account, stores the encrypted long-lived token and triggers a background
// sync. The connect succeeds once credentials are stored; the sync outcome is
// observable only through logs and the next status read.
func (s *IntegrationService) ConnectMeta(ctx context.Context, workspaceID, shortLivedToken string) (string, error) {
	longLivedToken, err := s.metaClient.ExchangeLongLivedToken(ctx, shortLivedToken)
	if err != nil {
		return "", err
	}

	identity, err := s.metaClient.GetAccountIdentity(ctx, longLivedToken)
	if err != nil {
		return "", err
	}

	accounts, err := s.metaClient.ListAdAccounts(ctx, longLivedToken)
	if err != nil {
		return "", err
	}
	account, err := selectAdAccount(accounts)
	if err != nil {
		return "", err
	}

	secret, err := s.vault.Encrypt(longLivedToken)
	if err != nil {
		return "", err
	}

	now := time.Now()
	record, err := s.integrationRepo.Upsert(ctx, &domain.Integration{
		WorkspaceID: workspaceID,
		Platform:    domain.PlatformMetaAds,
		IsActive:    true,
		PlatformID:  identity.ID,
		Credentials: domain.Credentials{
			AccessToken: secret.Ciphertext,
			IV:          secret.IV,
			AdAccountID: account.ID,
		},
		LastSyncAt: &now,
	})
	if err != nil {
		return "", err
	}

	s.invalidateStatus(ctx, workspaceID)
	s.triggerSync(record)

	return fmt.Sprintf("Connected to %s (%s)", account.Name, account.ID), nil
}

// ConnectShopify validates the storefront token, stores it encrypted and
// triggers a background sync
func (s *IntegrationService) ConnectShopify(ctx context.Context, workspaceID, shopURL, accessToken string) (string, error) {
	shop, err := s.storeClient.ValidateShop(ctx, shopURL, accessToken)
	if err != nil {
		return "", err
	}

	secret, err := s.vault.Encrypt(accessToken)
	if err != nil {
		return "", err
	}

	now := time.Now()
	record, err := s.integrationRepo.Upsert(ctx, &domain.Integration{
		WorkspaceID: workspaceID,
		Platform:    domain.PlatformShopify,
		IsActive:    true,
		PlatformID:  fmt.Sprintf("%d", shop.ID),
		Credentials: domain.Credentials{
			AccessToken: secret.Ciphertext,
			IV:          secret.IV,
			ShopURL:     shopURL,
		},
		LastSyncAt: &now,
	})
	if err != nil {
		return "", err
	}

	s.invalidateStatus(ctx, workspaceID)
	s.triggerSync(record)

	return fmt.Sprintf("Connected to %s", shop.Name), nil
}

// triggerSync submits the first sync off the request path. Failures here are
// logged by the task runner, never surfaced to the connect caller.
func (s *IntegrationService) triggerSync(record *domain.Integration) {
	name := fmt.Sprintf("sync-%s", record.Platform)
	s.tasks.Submit(name, func(ctx context.Context) error {
		return s.syncService.Sync(ctx, record)
	})
}

// Status reports which platforms are actively connected for a workspace
func (s *IntegrationService) Status(ctx context.Context, workspaceID string) (*domain.IntegrationStatus, error) {
	cacheKey := statusCacheKey(workspaceID)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var status domain.IntegrationStatus
		if err := json.Unmarshal(cached, &status); err == nil {
			return &status, nil
		}
	}

	integrations, err := s.integrationRepo.FindByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	status := &domain.IntegrationStatus{}
	for _, integration := range integrations {
		if !integration.IsActive {
			continue
		}
		switch integration.Platform {
		case domain.PlatformShopify:
			status.Shopify = true
		case domain.PlatformMetaAds:
			status.Meta = true
		case domain.PlatformGoogleGA:
			status.Google = true
		}
	}

	if encoded, err := json.Marshal(status); err == nil {
		if err := s.cache.Set(ctx, cacheKey, encoded, statusCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache integration status")
		}
	}

	return status, nil
}

// Disconnect deletes the integration record. Historical snapshots survive by
// design.
func (s *IntegrationService) Disconnect(ctx context.Context, workspaceID string, platform domain.Platform) error {
	if err := s.integrationRepo.Delete(ctx, workspaceID, platform); err != nil {
		return err
	}

	s.invalidateStatus(ctx, workspaceID)
	s.logger.Info().
		Str("workspaceId", workspaceID).
		Str("platform", string(platform)).
		Msg("Integration disconnected")
	return nil
}

func (s *IntegrationService) invalidateStatus(ctx context.Context, workspaceID string) {
	if err := s.cache.Delete(ctx, statusCacheKey(workspaceID)); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate status cache")
	}
}

func statusCacheKey(workspaceID string) string {
	return "integrations:status:" + workspaceID
}
