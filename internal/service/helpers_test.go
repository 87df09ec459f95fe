package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/pkg/db"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/genai"
	"github.com/dietcoach/backend/pkg/hash"
	"github.com/dietcoach/backend/pkg/revocation"
	"github.com/dietcoach/backend/pkg/search"
	"github.com/dietcoach/backend/pkg/tokens"
)

var testSecret = []byte("service-test-secret-service-test!")

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	if ev, ok := event.(events.Event); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[uint]search.UserDoc
	failing bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[uint]search.UserDoc)}
}

func (f *fakeIndex) IndexUser(_ context.Context, doc search.UserDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) DeleteUser(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) SearchUsers(_ context.Context, q string, _, size int) (int64, []search.UserDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, nil, errors.New("index down")
	}
	var out []search.UserDoc
	for _, d := range f.docs {
		if d.Username == q && len(out) < size {
			out = append(out, d)
		}
	}
	return int64(len(out)), out, nil
}

type testEnv struct {
	repo     *repo.GormRepo
	hasher   *hash.Hasher
	tokens   *tokens.Manager
	pub      *recordingPublisher
	index    *fakeIndex
	auth     *AuthService
	users    *UserService
	diet     *DietService
	chat     *ChatService
	exercise *ExerciseService
	catalog  *CatalogService

	mu      sync.Mutex
	prompts []string
	aiErr   error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	require.NoError(t, r.Migrate(context.Background()))

	env := &testEnv{
		repo:   r,
		hasher: hash.NewHasher(bcrypt.MinCost),
		tokens: tokens.NewManager(testSecret, time.Hour, revocation.NewMemory()),
		pub:    &recordingPublisher{},
		index:  newFakeIndex(),
	}

	ai := genai.Func(func(ctx context.Context, prompt string) (string, error) {
		env.mu.Lock()
		defer env.mu.Unlock()
		env.prompts = append(env.prompts, prompt)
		if env.aiErr != nil {
			return "", env.aiErr
		}
		return "Breakfast: oats. Lunch: lentils. Dinner: salmon.", nil
	})

	env.auth = &AuthService{
		Repo:        r,
		Hasher:      env.hasher,
		Tokens:      env.tokens,
		Events:      env.pub,
		Index:       env.index,
		PhoneRegion: "US",
	}
	env.users = &UserService{
		Repo:        r,
		Hasher:      env.hasher,
		Events:      env.pub,
		Index:       env.index,
		PhoneRegion: "US",
	}
	env.diet = &DietService{Repo: r, AI: ai, Events: env.pub, AITimeout: time.Second}
	env.chat = &ChatService{Repo: r, AI: ai, Events: env.pub, AITimeout: time.Second}
	env.exercise = &ExerciseService{Repo: r, Events: env.pub}
	env.catalog = &CatalogService{Repo: r}
	return env
}

func (e *testEnv) failAI(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aiErr = err
}

func (e *testEnv) lastPrompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.prompts) == 0 {
		return ""
	}
	return e.prompts[len(e.prompts)-1]
}

func (e *testEnv) register(t *testing.T, username string) *AuthResult {
	t.Helper()

	res, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) promote(t *testing.T, u *models.User) *models.User {
	t.Helper()

	ctx := context.Background()
	admin, err := e.repo.RoleByName(ctx, models.RoleAdmin)
	require.NoError(t, err)
	u.RoleID = admin.ID
	require.NoError(t, e.repo.SaveUser(ctx, u))

	out, err := e.repo.UserByID(ctx, u.ID)
	require.NoError(t, err)
	return out
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
