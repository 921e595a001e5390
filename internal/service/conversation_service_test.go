package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*model.ConversationSummary
	listCalls     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		conversations: make(map[uuid.UUID]*model.ConversationSummary),
	}
}

func (f *fakeStore) seed(adminID, userID uuid.UUID, unread int) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.conversations[id] = &model.ConversationSummary{
		Conversation: model.Conversation{
			ID:          id,
			UserID:      userID,
			AdminID:     adminID,
			UnreadCount: unread,
			CreatedAt:   time.Now().UTC(),
		},
		User: model.User{ID: userID, Name: "user", Email: "user@example.com"},
	}
	return id
}

func (f *fakeStore) unread(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conversations[id].Conversation.UnreadCount
}

func (f *fakeStore) ListForAdmin(ctx context.Context, adminID uuid.UUID) ([]model.ConversationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	var out []model.ConversationSummary
	for _, c := range f.conversations {
		if c.Conversation.AdminID == adminID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetForUser(ctx context.Context, adminID, userID uuid.UUID) (*model.ConversationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.conversations {
		if c.Conversation.AdminID == adminID && c.Conversation.UserID == userID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) Create(ctx context.Context, adminID, userID uuid.UUID) (*model.ConversationSummary, error) {
	id := f.seed(adminID, userID, 0)

	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *f.conversations[id]
	return &copied, nil
}

func (f *fakeStore) CreateMessage(ctx context.Context, adminID, conversationID uuid.UUID, content string, senderID uuid.UUID) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.conversations[conversationID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	fromAdmin := senderID == adminID
	if !fromAdmin && senderID != c.Conversation.UserID {
		return nil, repository.ErrNotParticipant
	}

	recipient := c.Conversation.UserID
	if !fromAdmin {
		recipient = adminID
	}

	now := time.Now().UTC()
	msg := model.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipient,
		Content:        content,
		IsRead:         fromAdmin,
		CreatedAt:      now,
	}

	c.Conversation.LastMessage = content
	c.Conversation.LastMessageAt = &now
	if fromAdmin {
		c.Conversation.UnreadCount = 0
	} else {
		c.Conversation.UnreadCount++
	}
	c.Messages = append([]model.Message{msg}, c.Messages...)

	return &msg, nil
}

func (f *fakeStore) MarkMessagesRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.conversations[conversationID]
	if !ok {
		return pgx.ErrNoRows
	}

	for i := range c.Messages {
		if c.Messages[i].SenderID != userID {
			c.Messages[i].IsRead = true
		}
	}
	c.Conversation.UnreadCount = 0
	return nil
}

type fakeUsers struct{}

func (fakeUsers) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return true, nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failDel bool
	gets    int
	sets    int
	dels    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gets++
	if f.failGet {
		return "", errors.New("cache unavailable")
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sets++
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func (f *fakeCache) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dels++
	if f.failDel {
		return errors.New("cache unavailable")
	}
	delete(f.data, key)
	return nil
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func newTestService(store *fakeStore, cache *fakeCache) *ConversationService {
	cfg := &config.AppConfig{ConversationCacheTTL: 300}
	return NewConversationService(store, fakeUsers{}, cache, cfg, config.NewValidator())
}

func TestGetConversationsPopulatesCacheOnMiss(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	store.seed(adminID, uuid.New(), 2)

	resp, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)
	require.Len(t, resp, 1)

	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, 1, cache.sets)
	assert.True(t, cache.has("admin:"+adminID.String()+":conversations"))
}

func TestGetConversationsServedFromCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	store.seed(adminID, uuid.New(), 0)

	_, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)

	resp, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)
	require.Len(t, resp, 1)

	assert.Equal(t, 1, store.listCalls, "second read must not hit the store")
	assert.Equal(t, 1, cache.sets)
}

func TestGetConversationsDegradesOnCacheFailure(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	cache.failGet = true
	svc := newTestService(store, cache)

	adminID := uuid.New()
	store.seed(adminID, uuid.New(), 0)

	resp, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, 1, store.listCalls)
}

func TestCreateConversationInvalidatesCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	store.seed(adminID, uuid.New(), 0)

	_, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)

	key := "admin:" + adminID.String() + ":conversations"
	require.True(t, cache.has(key))

	_, err = svc.CreateConversation(context.Background(), adminID, model.CreateConversationRequest{UserID: uuid.New()})
	require.NoError(t, err)

	assert.False(t, cache.has(key), "create must delete the cached list")

	resp, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, 2, store.listCalls)
}

func TestCreateConversationReturnsExisting(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	userID := uuid.New()
	existing := store.seed(adminID, userID, 0)

	resp, err := svc.CreateConversation(context.Background(), adminID, model.CreateConversationRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, existing, resp.ID)
	assert.Equal(t, 0, cache.dels, "returning an existing conversation is not a write")
}

func TestCreateConversationRejectsAdminAsUser(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeCache())

	adminID := uuid.New()
	_, err := svc.CreateConversation(context.Background(), adminID, model.CreateConversationRequest{UserID: adminID})
	require.Error(t, err)
}

func TestSendMessageInvalidatesCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	userID := uuid.New()
	convID := store.seed(adminID, userID, 0)

	_, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)

	key := "admin:" + adminID.String() + ":conversations"
	require.True(t, cache.has(key))

	msg, err := svc.SendMessage(context.Background(), adminID, userID, model.SendMessageRequest{
		ConversationID: convID,
		Content:        "hello",
	})
	require.NoError(t, err)

	assert.False(t, msg.IsRead, "a user message starts unread")
	assert.Equal(t, adminID, msg.RecipientID)
	assert.False(t, cache.has(key), "send must delete the cached list")
}

func TestSendMessageFromAdminResetsUnread(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeCache())

	adminID := uuid.New()
	userID := uuid.New()
	convID := store.seed(adminID, userID, 4)

	msg, err := svc.SendMessage(context.Background(), adminID, adminID, model.SendMessageRequest{
		ConversationID: convID,
		Content:        "we are on it",
	})
	require.NoError(t, err)

	assert.True(t, msg.IsRead, "an admin message is read on arrival")
	assert.Equal(t, userID, msg.RecipientID)
	assert.Equal(t, 0, store.unread(convID))
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	convID := store.seed(adminID, uuid.New(), 0)

	_, err := svc.SendMessage(context.Background(), adminID, uuid.New(), model.SendMessageRequest{
		ConversationID: convID,
		Content:        "let me in",
	})
	require.Error(t, err)
	assert.Equal(t, 0, cache.dels, "a rejected send must not invalidate")
}

func TestMarkMessagesReadDoesNotInvalidate(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	userID := uuid.New()
	convID := store.seed(adminID, userID, 3)

	_, err := svc.GetConversations(context.Background(), adminID)
	require.NoError(t, err)

	key := "admin:" + adminID.String() + ":conversations"
	require.True(t, cache.has(key))

	require.NoError(t, svc.MarkMessagesRead(context.Background(), convID, adminID))

	assert.True(t, cache.has(key), "mark-as-read must leave the cached list alone")
	assert.Equal(t, 0, store.unread(convID))
}

func TestGetConversationByUserBypassesCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := newTestService(store, cache)

	adminID := uuid.New()
	userID := uuid.New()
	store.seed(adminID, userID, 1)

	resp, err := svc.GetConversationByUser(context.Background(), adminID, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, 0, cache.gets, "the single-conversation read never touches the cache")
	assert.Equal(t, 0, cache.sets)
}

func TestConcurrentUserSendsAccumulateUnread(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeCache())

	adminID := uuid.New()
	userID := uuid.New()
	convID := store.seed(adminID, userID, 2)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SendMessage(context.Background(), adminID, userID, model.SendMessageRequest{
				ConversationID: convID,
				Content:        "ping",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, store.unread(convID), "each concurrent send must count")
}

func TestInvalidateFailureDoesNotFailWrite(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	cache.failDel = true
	svc := newTestService(store, cache)

	adminID := uuid.New()
	userID := uuid.New()
	convID := store.seed(adminID, userID, 0)

	_, err := svc.SendMessage(context.Background(), adminID, userID, model.SendMessageRequest{
		ConversationID: convID,
		Content:        "hello",
	})
	require.NoError(t, err, "a cache outage must not block the write path")
	assert.Equal(t, 3, cache.dels, "the delete is retried")
}
