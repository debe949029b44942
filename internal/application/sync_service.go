package application

import (
	"context"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/metrics"
	"pulseboard-analytics-core/internal/infrastructure/pubsub"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
)

// syncWindowDays is the trailing window pulled on every sync run
const syncWindowDays = 30

// SyncService drives one integration through decrypt, fetch, normalize and
// upsert, and iterates all active integrations for scheduled runs
type SyncService struct {
	integrationRepo ports.IntegrationRepository
	snapshotRepo    ports.SnapshotRepository
	vault           ports.EncryptionService
	metaClient      ports.MetaClient
	storeClient     ports.StoreClient
	syncMetrics     *metrics.SyncMetrics
	events          *pubsub.SyncEventBus
	logger          zerolog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	integrationRepo ports.IntegrationRepository,
	snapshotRepo ports.SnapshotRepository,
	vault ports.EncryptionService,
	metaClient ports.MetaClient,
	storeClient ports.StoreClient,
	syncMetrics *metrics.SyncMetrics,
	events *pubsub.SyncEventBus,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		integrationRepo: integrationRepo,
		snapshotRepo:    snapshotRepo,
		vault:           vault,
		metaClient:      metaClient,
		storeClient:     storeClient,
		syncMetrics:     syncMetrics,
		events:          events,
		logger:          logger,
	}
}

// Sync runs one integration's pipeline. A partially-configured record is a
// skip, not an error; an upstream outage degrades to a no-op for this run.
func (s *SyncService) Sync(ctx context.Context, integration *domain.Integration) error {
	s.syncMetrics.Runs.WithLabelValues(string(integration.Platform)).Inc()

	var err error
	switch integration.Platform {
	case domain.PlatformMetaAds:
		err = s.syncMetaAds(ctx, integration)
	case domain.PlatformShopify:
		err = s.syncShopify(ctx, integration)
	default:
		s.logger.Debug().
			Str("platform", string(integration.Platform)).
			Str("workspaceId", integration.WorkspaceID).
			Msg("No sync implemented for platform, skipping")
		return nil
	}

	if err != nil {
		s.syncMetrics.Failures.WithLabelValues(string(integration.Platform)).Inc()
	}
	return err
}

func (s *SyncService) syncMetaAds(ctx context.Context, integration *domain.Integration) error {
	log := s.logger.With().
		Str("workspaceId", integration.WorkspaceID).
		Str("platform", string(integration.Platform)).
		Logger()
	log.Info().Msg("Syncing Meta Ads")

	accessToken, err := s.vault.Decrypt(domain.EncryptedSecret{
		Ciphertext: integration.Credentials.AccessToken,
		IV:         integration.Credentials.IV,
	})
	if err != nil {
		return err
	}

	adAccountID := integration.Credentials.AdAccountID
	if accessToken == "" || adAccountID == "" {
		log.Warn().Msg("Skipping sync: missing credentials")
		return nil
	}

	insights := s.metaClient.GetDailyInsights(ctx, accessToken, adAccountID, syncWindowDays)
	if len(insights) == 0 {
		log.Info().Msg("No insight data returned")
		return nil
	}

	for _, day := range insights {
		adsMetrics := day.AdsMetrics
		snapshot := &domain.MetricSnapshot{
			WorkspaceID: integration.WorkspaceID,
			Platform:    domain.PlatformMetaAds,
			Date:        day.Date,
			Data:        domain.SnapshotData{Ads: &adsMetrics},
		}
		if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
			return err
		}
		s.syncMetrics.Snapshots.WithLabelValues(string(domain.PlatformMetaAds)).Inc()
	}

	if err := s.integrationRepo.UpdateSyncState(ctx, integration.ID, true); err != nil {
		return err
	}

	s.events.Publish(pubsub.SyncEvent{
		WorkspaceID: integration.WorkspaceID,
		Platform:    domain.PlatformMetaAds,
		Days:        len(insights),
		CompletedAt: time.Now(),
	})

	log.Info().Int("days", len(insights)).Msg("Sync completed")
	return nil
}

func (s *SyncService) syncShopify(ctx context.Context, integration *domain.Integration) error {
	log := s.logger.With().
		Str("workspaceId", integration.WorkspaceID).
		Str("platform", string(integration.Platform)).
		Logger()
	log.Info().Msg("Syncing Shopify orders")

	accessToken, err := s.vault.Decrypt(domain.EncryptedSecret{
		Ciphertext: integration.Credentials.AccessToken,
		IV:         integration.Credentials.IV,
	})
	if err != nil {
		return err
	}

	shopURL := integration.Credentials.ShopURL
	if accessToken == "" || shopURL == "" {
		log.Warn().Msg("Skipping sync: missing credentials")
		return nil
	}

	daily := s.storeClient.DailyOrderMetrics(ctx, shopURL, accessToken, syncWindowDays)
	if len(daily) == 0 {
		log.Info().Msg("No order data returned")
		return nil
	}

	for _, day := range daily {
		storeMetrics := day.StoreMetrics
		snapshot := &domain.MetricSnapshot{
			WorkspaceID: integration.WorkspaceID,
			Platform:    domain.PlatformShopify,
			Date:        day.Date,
			Data:        domain.SnapshotData{Store: &storeMetrics},
		}
		if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
			return err
		}
		s.syncMetrics.Snapshots.WithLabelValues(string(domain.PlatformShopify)).Inc()
	}

	if err := s.integrationRepo.UpdateSyncState(ctx, integration.ID, true); err != nil {
		return err
	}

	s.events.Publish(pubsub.SyncEvent{
		WorkspaceID: integration.WorkspaceID,
		Platform:    domain.PlatformShopify,
		Days:        len(daily),
		CompletedAt: time.Now(),
	})

	log.Info().Int("days", len(daily)).Msg("Sync completed")
	return nil
}

// SyncAll re-runs sync for every active integration. One integration's failure
// is logged and counted but never stops the rest of the batch.
func (s *SyncService) SyncAll(ctx context.Context) {
	s.logger.Info().Msg("Starting global sync")

	integrations, err := s.integrationRepo.FindActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Global sync failed to list integrations")
		return
	}

	for _, integration := range integrations {
		if err := s.Sync(ctx, integration); err != nil {
			s.logger.Error().
				Err(err).
				Str("integrationId", integration.ID).
				Str("workspaceId", integration.WorkspaceID).
				Str("platform", string(integration.Platform)).
				Msg("Sync failed")
		}
	}

	s.logger.Info().Int("integrations", len(integrations)).Msg("Global sync complete")
}
