package application_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"
)

// In-memory fakes for the persistence and platform ports. They mirror the
// storage semantics the Mongo implementations provide: upserts keyed on the
// unique indexes, misses returned as (nil, nil).

func integrationKey(workspaceID string, platform domain.Platform) string {
	return workspaceID + "|" + string(platform)
}

type fakeIntegrationRepo struct {
	mu      sync.Mutex
	records map[string]*domain.Integration
	seq     int

	findActiveErr error
}

func newFakeIntegrationRepo() *fakeIntegrationRepo {
	return &fakeIntegrationRepo{records: make(map[string]*domain.Integration)}
}

func (r *fakeIntegrationRepo) Upsert(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := integrationKey(integration.WorkspaceID, integration.Platform)
	stored := *integration
	if existing, ok := r.records[key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		r.seq++
		stored.ID = fmt.Sprintf("integration-%d", r.seq)
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = time.Now()
	r.records[key] = &stored

	out := stored
	return &out, nil
}

func (r *fakeIntegrationRepo) FindActive(ctx context.Context) ([]*domain.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findActiveErr != nil {
		return nil, r.findActiveErr
	}

	var out []*domain.Integration
	for _, record := range r.records {
		if record.IsActive {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeIntegrationRepo) FindByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Integration
	for _, record := range r.records {
		if record.WorkspaceID == workspaceID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeIntegrationRepo) UpdateSyncState(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.ID == id {
			now := time.Now()
			record.LastSyncAt = &now
			record.IsActive = active
			record.UpdatedAt = now
			return nil
		}
	}
	return nil
}

func (r *fakeIntegrationRepo) Delete(ctx context.Context, workspaceID string, platform domain.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, integrationKey(workspaceID, platform))
	return nil
}

func (r *fakeIntegrationRepo) get(workspaceID string, platform domain.Platform) *domain.Integration {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[integrationKey(workspaceID, platform)]
	if !ok {
		return nil
	}
	copied := *record
	return &copied
}

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots map[string]*domain.MetricSnapshot
	upsertErr error
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[string]*domain.MetricSnapshot)}
}

func snapshotKey(workspaceID string, platform domain.Platform, date time.Time) string {
	return workspaceID + "|" + string(platform) + "|" + domain.DayOf(date).Format("2006-01-02")
}

func (r *fakeSnapshotRepo) Upsert(ctx context.Context, snapshot *domain.MetricSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}

	copied := *snapshot
	copied.Date = domain.DayOf(snapshot.Date)
	r.snapshots[snapshotKey(snapshot.WorkspaceID, snapshot.Platform, snapshot.Date)] = &copied
	return nil
}

func (r *fakeSnapshotRepo) FindRange(ctx context.Context, workspaceID string, platform domain.Platform, from, to time.Time) ([]*domain.MetricSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.MetricSnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.WorkspaceID != workspaceID || snapshot.Platform != platform {
			continue
		}
		if snapshot.Date.Before(from) || snapshot.Date.After(to) {
			continue
		}
		copied := *snapshot
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSnapshotRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

// fakeVault marks ciphertexts with a prefix so tests can assert plaintext
// tokens never reach storage
type fakeVault struct {
	decryptErr error
}

func (v *fakeVault) Encrypt(plaintext string) (domain.EncryptedSecret, error) {
	return domain.EncryptedSecret{Ciphertext: "sealed:" + plaintext, IV: "test-iv"}, nil
}

func (v *fakeVault) Decrypt(secret domain.EncryptedSecret) (string, error) {
	if v.decryptErr != nil {
		return "", v.decryptErr
	}
	if !strings.HasPrefix(secret.Ciphertext, "sealed:") {
		return "", &domain.CryptoError{Op: "decrypt", Err: fmt.Errorf("unexpected ciphertext %q", secret.Ciphertext)}
	}
	return strings.TrimPrefix(secret.Ciphertext, "sealed:"), nil
}

type fakeMetaClient struct {
	exchangeErr   error
	longToken     string
	identity      ports.AccountIdentity
	accounts      []ports.AdAccount
	accountsErr   error
	insights      []domain.DailyInsight
	insightCalls  int
	lastAccountID string
}

func (c *fakeMetaClient) ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (string, error) {
	if c.exchangeErr != nil {
		return "", c.exchangeErr
	}
	return c.longToken, nil
}

func (c *fakeMetaClient) GetAccountIdentity(ctx context.Context, accessToken string) (*ports.AccountIdentity, error) {
	identity := c.identity
	return &identity, nil
}

func (c *fakeMetaClient) ListAdAccounts(ctx context.Context, accessToken string) ([]ports.AdAccount, error) {
	if c.accountsErr != nil {
		return nil, c.accountsErr
	}
	return c.accounts, nil
}

func (c *fakeMetaClient) GetDailyInsights(ctx context.Context, accessToken, adAccountID string, windowDays int) []domain.DailyInsight {
	c.insightCalls++
	c.lastAccountID = adAccountID
	return c.insights
}

type fakeStoreClient struct {
	shop    ports.ShopDetails
	shopErr error
	daily   []domain.DailyStoreMetrics
}

func (c *fakeStoreClient) ValidateShop(ctx context.Context, shopURL, accessToken string) (*ports.ShopDetails, error) {
	if c.shopErr != nil {
		return nil, c.shopErr
	}
	shop := c.shop
	return &shop, nil
}

func (c *fakeStoreClient) DailyOrderMetrics(ctx context.Context, shopURL, accessToken string, windowDays int) []domain.DailyStoreMetrics {
	return c.daily
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

type fakeTokenService struct{}

func (s *fakeTokenService) Issue(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func (s *fakeTokenService) Verify(token string) (string, error) {
	if !strings.HasPrefix(token, "token-for-") {
		return "", domain.ErrUnauthorized
	}
	return strings.TrimPrefix(token, "token-for-"), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by ID
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeWorkspaceRepo struct {
	mu         sync.Mutex
	workspaces map[string]*domain.Workspace
	seq        int
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[string]*domain.Workspace)}
}

func (r *fakeWorkspaceRepo) Create(ctx context.Context, workspace *domain.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	workspace.ID = fmt.Sprintf("workspace-%d", r.seq)
	copied := *workspace
	r.workspaces[workspace.ID] = &copied
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	workspace, ok := r.workspaces[id]
	if !ok {
		return nil, nil
	}
	copied := *workspace
	return &copied, nil
}
