package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ingressTestDeps struct {
	svc     *IngressServiceImpl
	dedupe  *mocks.MockUpdateDeduper
	inbound *mocks.MockInboundRepository
	dir     *mocks.MockAccountDirectory
	members *mocks.MockChatMemberRepository
	disp    *Dispatcher

	mu      sync.Mutex
	handled []*domain.MessageContext
}

func setupIngressService(t *testing.T) *ingressTestDeps {
	ctrl := gomock.NewController(t)
	d := &ingressTestDeps{
		dedupe:  mocks.NewMockUpdateDeduper(ctrl),
		inbound: mocks.NewMockInboundRepository(ctrl),
		dir:     mocks.NewMockAccountDirectory(ctrl),
		members: mocks.NewMockChatMemberRepository(ctrl),
	}
	d.disp = NewDispatcher(handlerFunc(func(_ context.Context, msg *domain.MessageContext) (*domain.Result, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.handled = append(d.handled, msg)
		return &domain.Result{}, nil
	}), 4, zerolog.Nop())
	d.svc = NewIngressService(d.dedupe, d.inbound, d.dir, d.members, d.disp, time.Hour, zerolog.Nop())
	return d
}

func (d *ingressTestDeps) dispatched() []*domain.MessageContext {
	d.disp.Wait()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handled
}

func twitterDM(id string) *domain.MessageContext {
	return &domain.MessageContext{
		Platform:  domain.PlatformTwitter,
		SenderID:  "u1",
		MessageID: id,
		Text:      "!balance",
	}
}

func TestIngressService_Submit_Fresh(t *testing.T) {
	d := setupIngressService(t)
	ctx := context.Background()
	msg := twitterDM("m1")

	d.dedupe.EXPECT().CheckAndSet(ctx, domain.PlatformTwitter, "m1", time.Hour).Return(true, nil)
	d.inbound.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, in *domain.InboundMessage) (bool, error) {
		assert.Equal(t, "m1", in.MessageID)
		assert.Equal(t, "!balance", in.Text)
		return true, nil
	})
	d.dir.EXPECT().Find(ctx, domain.PlatformTwitter, "u1").Return(&domain.Account{Language: "fr"}, nil)

	fresh, err := d.svc.Submit(ctx, msg)
	require.NoError(t, err)
	assert.True(t, fresh)

	got := d.dispatched()
	require.Len(t, got, 1)
	assert.Equal(t, "fr", got[0].Locale)
}

func TestIngressService_Submit_CacheDuplicate(t *testing.T) {
	d := setupIngressService(t)
	ctx := context.Background()

	d.dedupe.EXPECT().CheckAndSet(ctx, domain.PlatformTwitter, "m1", time.Hour).Return(false, nil)

	fresh, err := d.svc.Submit(ctx, twitterDM("m1"))
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Empty(t, d.dispatched())
}

func TestIngressService_Submit_CacheDownFallsThroughToLog(t *testing.T) {
	d := setupIngressService(t)
	ctx := context.Background()

	d.dedupe.EXPECT().CheckAndSet(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("dial tcp: connection refused"))
	d.inbound.EXPECT().Record(ctx, gomock.Any()).Return(false, nil)

	fresh, err := d.svc.Submit(ctx, twitterDM("m1"))
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Empty(t, d.dispatched())
}

func TestIngressService_Submit_RecordFault(t *testing.T) {
	d := setupIngressService(t)
	ctx := context.Background()

	d.dedupe.EXPECT().CheckAndSet(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.inbound.EXPECT().Record(ctx, gomock.Any()).Return(false, errors.New("pool closed"))
	d.dedupe.EXPECT().Release(ctx, domain.PlatformTwitter, "m1").Return(nil)

	_, err := d.svc.Submit(ctx, twitterDM("m1"))
	require.Error(t, err)
	assert.Empty(t, d.dispatched())
}

// statefulDeduper remembers claimed keys the way the Redis store does.
type statefulDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (s *statefulDeduper) CheckAndSet(_ context.Context, platform domain.Platform, id string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(platform) + ":" + id
	if s.seen[k] {
		return false, nil
	}
	s.seen[k] = true
	return true, nil
}

func (s *statefulDeduper) Release(_ context.Context, platform domain.Platform, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, string(platform)+":"+id)
	return nil
}

func TestIngressService_Submit_RedeliveryAfterRecordFault(t *testing.T) {
	d := setupIngressService(t)
	d.svc.dedupe = &statefulDeduper{seen: make(map[string]bool)}
	ctx := context.Background()

	gomock.InOrder(
		d.inbound.EXPECT().Record(ctx, gomock.Any()).Return(false, errors.New("postgres: connection reset")),
		d.inbound.EXPECT().Record(ctx, gomock.Any()).Return(true, nil),
	)
	d.dir.EXPECT().Find(ctx, domain.PlatformTwitter, "u1").Return(nil, nil)

	_, err := d.svc.Submit(ctx, twitterDM("m1"))
	require.Error(t, err)

	fresh, err := d.svc.Submit(ctx, twitterDM("m1"))
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Len(t, d.dispatched(), 1)
}

func TestIngressService_Submit_RedeliveryAfterMentionFault(t *testing.T) {
	d := setupIngressService(t)
	d.svc.dedupe = &statefulDeduper{seen: make(map[string]bool)}
	ctx := context.Background()
	tip := func() *domain.MessageContext {
		return &domain.MessageContext{
			Platform:   domain.PlatformTelegram,
			SenderID:   "u1",
			ChatID:     "-100",
			MessageID:  "42",
			Text:       "!tip 1 @bob",
			Public:     true,
			Recipients: []domain.Recipient{{UserName: "bob"}},
		}
	}

	gomock.InOrder(
		d.members.EXPECT().FindByName(ctx, "-100", "bob").Return(nil, errors.New("postgres: connection reset")),
		d.members.EXPECT().FindByName(ctx, "-100", "bob").Return(&domain.ChatMember{ChatID: "-100", MemberID: "u2", MemberName: "bob"}, nil),
	)
	d.inbound.EXPECT().Record(ctx, gomock.Any()).Return(true, nil).Times(1)
	d.dir.EXPECT().Find(ctx, domain.PlatformTelegram, "u1").Return(nil, nil)

	_, err := d.svc.Submit(ctx, tip())
	require.Error(t, err)

	fresh, err := d.svc.Submit(ctx, tip())
	require.NoError(t, err)
	assert.True(t, fresh)
	got := d.dispatched()
	require.Len(t, got, 1)
	assert.Equal(t, []domain.Recipient{{UserID: "u2", UserName: "bob"}}, got[0].Recipients)
}

func TestIngressService_Submit_PresetLocaleSkipsLookup(t *testing.T) {
	d := setupIngressService(t)
	ctx := context.Background()
	msg := twitterDM("m2")
	msg.Locale = "de"

	d.dedupe.EXPECT().CheckAndSet(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.inbound.EXPECT().Record(ctx, gomock.Any()).Return(true, nil)

	_, err := d.svc.Submit(ctx, msg)
	require.NoError(t, err)
	require.Len(t, d.dispatched(), 1)
}

func TestIngressService_Submit_ResolvesTelegramMentions(t *testing.T) {
	d := setupIngressService(t)
	ctx := context.Background()
	msg := &domain.MessageContext{
		Platform:  domain.PlatformTelegram,
		SenderID:  "u1",
		ChatID:    "-100",
		MessageID: "42",
		Text:      "!tip 1 @bob @ghost @carol",
		Public:    true,
		Recipients: []domain.Recipient{
			{UserName: "bob"},
			{UserName: "ghost"},
			{UserID: "u3", UserName: "carol"},
		},
	}

	d.dedupe.EXPECT().CheckAndSet(ctx, domain.PlatformTelegram, "-100:42", time.Hour).Return(true, nil)
	d.inbound.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, in *domain.InboundMessage) (bool, error) {
		assert.Equal(t, "-100:42", in.MessageID)
		return true, nil
	})
	d.members.EXPECT().FindByName(ctx, "-100", "bob").Return(&domain.ChatMember{ChatID: "-100", MemberID: "u2", MemberName: "bob"}, nil)
	d.members.EXPECT().FindByName(ctx, "-100", "ghost").Return(nil, nil)
	d.dir.EXPECT().Find(ctx, domain.PlatformTelegram, "u1").Return(nil, nil)

	_, err := d.svc.Submit(ctx, msg)
	require.NoError(t, err)

	got := d.dispatched()
	require.Len(t, got, 1)
	assert.Equal(t, []domain.Recipient{
		{UserID: "u2", UserName: "bob"},
		{UserID: "u3", UserName: "carol"},
	}, got[0].Recipients)
	assert.Empty(t, got[0].Locale)
}

func TestIngressService_Members(t *testing.T) {
	d := setupIngressService(t)
	ctx := context.Background()
	member := domain.ChatMember{ChatID: "-100", ChatName: "nano tippers", MemberID: "u2", MemberName: "bob"}

	d.members.EXPECT().Upsert(ctx, member).Return(nil)
	d.members.EXPECT().Remove(ctx, "-100", "u2").Return(errors.New("timeout"))

	require.NoError(t, d.svc.TrackMember(ctx, member))
	err := d.svc.ForgetMember(ctx, "-100", "u2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forget chat member")
}
