package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/mock"
	"github.com/roadwatch/roadwatch/internal/service"
	"github.com/roadwatch/roadwatch/models"
)

type handlerFixture struct {
	auth *mock.MockAuthService
	sync *mock.MockSyncService
	push *mock.MockPushTokenService
	srv  *httptest.Server
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	syncSvc := mock.NewMockSyncService(ctrl)
	push := mock.NewMockPushTokenService(ctrl)

	handler := NewHandler(&service.Services{
		Auth:      auth,
		Sync:      syncSvc,
		PushToken: push,
	}, logger.Nop())

	srv := httptest.NewServer(handler.Init())
	t.Cleanup(srv.Close)

	return &handlerFixture{auth: auth, sync: syncSvc, push: push, srv: srv}
}

// anonymous stubs session resolution for the data routes, which annotate the
// request with the account id when a local session exists.
func (f *handlerFixture) anonymous() {
	f.auth.EXPECT().Session(gomock.Any()).Return(models.Session{}, service.ErrNoSession)
}

func (f *handlerFixture) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(f.srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (f *handlerFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	return resp
}

func decodeLogin(t *testing.T, resp *http.Response) loginResponse {
	t.Helper()
	defer resp.Body.Close()
	var body loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestLoginEndpoint_Success(t *testing.T) {
	f := newHandlerFixture(t)

	session := models.Session{
		Token:     "acc-1",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      models.SessionUser{AccountID: "acc-1", Email: "jane@example.com"},
	}
	f.auth.EXPECT().Login(gomock.Any(), "jane@example.com", "s3cret").Return(session, nil)

	resp := f.post(t, "/api/login", `{"credential":"jane@example.com","secret":"s3cret"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeLogin(t, resp)
	assert.True(t, body.OK)
	require.NotNil(t, body.Session)
	assert.Equal(t, "acc-1", body.Session.User.AccountID)
	assert.Nil(t, body.Error)
}

func TestLoginEndpoint_InvalidCredentialsWithRemaining(t *testing.T) {
	f := newHandlerFixture(t)

	remaining := 2
	f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Session{}, &service.LoginError{
			Code:              service.CodeInvalidCredentials,
			RemainingAttempts: &remaining,
		})

	resp := f.post(t, "/api/login", `{"credential":"jane@example.com","secret":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeLogin(t, resp)
	assert.False(t, body.OK)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
	require.NotNil(t, body.Error.RemainingAttempts)
	assert.Equal(t, 2, *body.Error.RemainingAttempts)
	assert.False(t, body.Error.IsLocked)
}

func TestLoginEndpoint_InvalidCredentialsWithoutAttribution(t *testing.T) {
	f := newHandlerFixture(t)

	f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Session{}, &service.LoginError{Code: service.CodeInvalidCredentials})

	resp := f.post(t, "/api/login", `{"credential":"nobody@example.com","secret":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeLogin(t, resp)
	require.NotNil(t, body.Error)
	assert.Nil(t, body.Error.RemainingAttempts, "no attribution, no number for the UI")
}

func TestLoginEndpoint_Locked(t *testing.T) {
	f := newHandlerFixture(t)

	f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Session{}, &service.LoginError{Code: service.CodeAccountLocked})

	resp := f.post(t, "/api/login", `{"credential":"jane@example.com","secret":"s3cret"}`)

	assert.Equal(t, http.StatusLocked, resp.StatusCode)
	body := decodeLogin(t, resp)
	require.NotNil(t, body.Error)
	assert.True(t, body.Error.IsLocked)
	assert.Equal(t, "ACCOUNT_LOCKED", body.Error.Code)
}

func TestLoginEndpoint_NetworkError(t *testing.T) {
	f := newHandlerFixture(t)

	f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Session{}, &service.LoginError{Code: service.CodeNetworkError})

	resp := f.post(t, "/api/login", `{"credential":"jane@example.com","secret":"s3cret"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestLoginEndpoint_BadJSON(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.post(t, "/api/login", `{not json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	f.auth.EXPECT().Logout(gomock.Any()).Return(nil)

	resp := f.post(t, "/api/logout", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSessionEndpoint_Absent(t *testing.T) {
	f := newHandlerFixture(t)

	f.auth.EXPECT().Session(gomock.Any()).Return(models.Session{}, service.ErrNoSession)

	resp := f.get(t, "/api/session")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReportsEndpoint_ForwardsFilters(t *testing.T) {
	f := newHandlerFixture(t)
	f.anonymous()

	f.sync.EXPECT().CachedReports(gomock.Any(), "pothole", "submitted").
		Return([]models.Report{{ID: "r-1", Category: "pothole", Status: "submitted"}}, nil)

	resp := f.get(t, "/api/reports?category=pothole&status=submitted")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var reports []models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "r-1", reports[0].ID)
}

func TestReportsEndpoint_SignedIn(t *testing.T) {
	f := newHandlerFixture(t)

	f.auth.EXPECT().Session(gomock.Any()).Return(models.Session{
		Token:     "acc-1",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      models.SessionUser{AccountID: "acc-1"},
	}, nil)
	f.sync.EXPECT().CachedReports(gomock.Any(), "", "").Return([]models.Report{}, nil)

	resp := f.get(t, "/api/reports")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReportsEndpoint_EmptySnapshotIsEmptyArray(t *testing.T) {
	f := newHandlerFixture(t)
	f.anonymous()

	f.sync.EXPECT().CachedReports(gomock.Any(), "", "").Return(nil, nil)

	resp := f.get(t, "/api/reports")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var reports []models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reports))
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestRefreshEndpoint_RemoteFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.anonymous()

	f.sync.EXPECT().FetchAll(gomock.Any()).Return(nil, errors.New("remote store unavailable"))

	resp := f.post(t, "/api/reports/refresh", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestPushTokenEndpoint_Accepted(t *testing.T) {
	f := newHandlerFixture(t)
	f.anonymous()

	registered := make(chan string, 1)
	f.push.EXPECT().Register(gomock.Any(), "tok-1").Do(
		func(_ context.Context, token string) {
			registered <- token
		})

	resp := f.post(t, "/api/push-token", `{"token":"tok-1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	select {
	case token := <-registered:
		assert.Equal(t, "tok-1", token)
	case <-time.After(time.Second):
		t.Fatal("push token was never registered")
	}
}

func TestPushTokenEndpoint_EmptyTokenRejected(t *testing.T) {
	f := newHandlerFixture(t)
	f.anonymous()

	resp := f.post(t, "/api/push-token", `{"token":""}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
