package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

type storeMock struct{ mock.Mock }

func (m *storeMock) GetSubscriptions(ctx context.Context, login string) ([]entities.PushSubscription, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PushSubscription), args.Error(1)
}

func (m *storeMock) RemoveSubscription(ctx context.Context, login, endpoint string) error {
	args := m.Called(ctx, login, endpoint)
	return args.Error(0)
}

func TestNotificationText(t *testing.T) {
	title, body := NotificationText(1)
	require.Equal(t, "New activity on 1 PR", title)
	require.NotEmpty(t, body)

	title, _ = NotificationText(4)
	require.Equal(t, "New activity on 4 PRs", title)
}

func TestNotifyWithoutKeysIsPermissionDenied(t *testing.T) {
	store := &storeMock{}
	s := New(zap.NewNop().Sugar(), store, Config{})

	err := s.NotifyNewActivity(context.Background(), "me", 2)
	require.ErrorIs(t, err, entities.ErrPermissionDenied)
	store.AssertNotCalled(t, "GetSubscriptions", mock.Anything, mock.Anything)
}

func TestNotifyWithoutSubscriptionsIsNoop(t *testing.T) {
	store := &storeMock{}
	store.On("GetSubscriptions", mock.Anything, "me").Return([]entities.PushSubscription{}, nil)

	s := New(zap.NewNop().Sugar(), store, Config{
		VAPIDPublicKey:  "pub",
		VAPIDPrivateKey: "priv",
		Subject:         "mailto:ops@example.com",
	})

	require.NoError(t, s.NotifyNewActivity(context.Background(), "me", 2))
	store.AssertExpectations(t)
}
