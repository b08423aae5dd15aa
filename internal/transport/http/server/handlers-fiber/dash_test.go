package handlers_fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PolymerLabs/project-health-sub001/internal/api"
	"github.com/PolymerLabs/project-health-sub001/internal/entities"
	"github.com/PolymerLabs/project-health-sub001/internal/usecase"
)

type ucMock struct{ mock.Mock }

var _ usecase.InterfaceUsecase = (*ucMock)(nil)

func (m *ucMock) OutgoingDash(ctx context.Context, login string) (entities.DashSnapshot, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(entities.DashSnapshot), args.Error(1)
}

func (m *ucMock) IncomingDash(ctx context.Context, login string) (entities.DashSnapshot, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(entities.DashSnapshot), args.Error(1)
}

func (m *ucMock) IssuesDash(ctx context.Context, login string) ([]entities.Issue, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Issue), args.Error(1)
}

func (m *ucMock) MarkViewed(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *ucMock) AddSubscription(ctx context.Context, sub entities.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *ucMock) RemoveSubscription(ctx context.Context, login, endpoint string) error {
	args := m.Called(ctx, login, endpoint)
	return args.Error(0)
}

func (m *ucMock) Settings(ctx context.Context, login string) (json.RawMessage, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *ucMock) SaveSettings(ctx context.Context, login string, settings json.RawMessage) error {
	args := m.Called(ctx, login, settings)
	return args.Error(0)
}

func (m *ucMock) RecordActivity(ctx context.Context, logins []string, at time.Time) error {
	args := m.Called(ctx, logins, at)
	return args.Error(0)
}

func newApp(uc usecase.InterfaceUsecase) *fiber.App {
	app := fiber.New()
	api.RegisterHandlers(app, NewHandler(zap.NewNop().Sugar(), uc))
	return app
}

func TestGetDashOutgoing(t *testing.T) {
	snap := entities.DashSnapshot{
		User: "me",
		PRs: []entities.PullRequest{{
			ID:     "pr-1",
			Title:  "Add widget",
			Author: "me",
			Status: entities.NoReviewers{},
		}},
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	uc := &ucMock{}
	uc.On("OutgoingDash", mock.Anything, "me").Return(snap, nil)

	app := newApp(uc)
	req := httptest.NewRequest(http.MethodGet, "/api/dash/outgoing?login=me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.DashResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "me", body.User)
	require.Len(t, body.Prs, 1)
	require.Equal(t, "NoReviewers", body.Prs[0].Status.Type)
	require.True(t, body.Prs[0].Status.Actionable)
}

func TestGetDashOutgoingRequiresLogin(t *testing.T) {
	app := newApp(&ucMock{})
	req := httptest.NewRequest(http.MethodGet, "/api/dash/outgoing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDashIncomingFetchFailure(t *testing.T) {
	uc := &ucMock{}
	uc.On("IncomingDash", mock.Anything, "me").
		Return(entities.DashSnapshot{}, &entities.FetchFailed{Cursor: "c-7", Err: context.DeadlineExceeded})

	app := newApp(uc)
	req := httptest.NewRequest(http.MethodGet, "/api/dash/incoming?login=me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, api.FETCHFAILED, body.Error.Code)
}

func TestGetDashIssues(t *testing.T) {
	uc := &ucMock{}
	uc.On("IssuesDash", mock.Anything, "me").Return([]entities.Issue{{
		ID:         "i-1",
		Title:      "Crash on start",
		Status:     entities.IssueAssigned{},
		Popularity: 2,
	}}, nil)

	app := newApp(uc)
	req := httptest.NewRequest(http.MethodGet, "/api/dash/issues?login=me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.IssuesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Issues, 1)
	require.Equal(t, "Assigned", body.Issues[0].Status.Type)
	require.Equal(t, 2, body.Issues[0].Popularity)
}

func TestPostDashViewed(t *testing.T) {
	uc := &ucMock{}
	uc.On("MarkViewed", mock.Anything, "me").Return(nil)

	app := newApp(uc)
	req := httptest.NewRequest(http.MethodPost, "/api/dash/viewed", bytes.NewBufferString(`{"login":"me"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestPostPushSubscriptionAdd(t *testing.T) {
	uc := &ucMock{}
	uc.On("AddSubscription", mock.Anything, entities.PushSubscription{
		UserLogin:        "me",
		Endpoint:         "https://push.example.com/ep-1",
		P256DH:           "p",
		Auth:             "a",
		ContentEncodings: []string{"aes128gcm"},
	}).Return(nil)

	app := newApp(uc)
	body := `{
		"login": "me",
		"subscription": {"endpoint": "https://push.example.com/ep-1", "keys": {"p256dh": "p", "auth": "a"}},
		"supported_content_encodings": ["aes128gcm"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/push-subscription/add", bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestPostPushSubscriptionRemoveNotFound(t *testing.T) {
	uc := &ucMock{}
	uc.On("RemoveSubscription", mock.Anything, "me", "gone").Return(entities.ErrSubscriptionNotFound)

	app := newApp(uc)
	req := httptest.NewRequest(http.MethodPost, "/api/push-subscription/remove",
		bytes.NewBufferString(`{"login":"me","endpoint":"gone"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSettingsEndpoints(t *testing.T) {
	uc := &ucMock{}
	uc.On("Settings", mock.Anything, "me").Return(json.RawMessage(`{"theme":"dark"}`), nil)
	uc.On("SaveSettings", mock.Anything, "me", json.RawMessage(`{"theme":"dark"}`)).Return(nil)

	app := newApp(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/settings?login=me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.SettingsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.JSONEq(t, `{"theme":"dark"}`, string(body.Settings))

	req = httptest.NewRequest(http.MethodPost, "/api/settings",
		bytes.NewBufferString(`{"login":"me","settings":{"theme":"dark"}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestPostWebhook(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := &ucMock{}
	uc.On("RecordActivity", mock.Anything, []string{"alice", "bob"}, at).Return(nil)

	app := newApp(uc)
	req := httptest.NewRequest(http.MethodPost, "/api/webhook",
		bytes.NewBufferString(`{"logins":["alice","bob"],"timestamp":"2024-03-01T12:00:00Z"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	uc.AssertExpectations(t)
}
