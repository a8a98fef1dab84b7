package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"homequest-admin/internal/credentials"
	apperrors "homequest-admin/internal/errors"
	"homequest-admin/internal/models"
	"homequest-admin/internal/stub"
	"homequest-admin/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) (*Client, *credentials.Store) {
	t.Helper()
	t.Setenv("HOMEQUEST_API_URL", baseURL)
	t.Setenv("HOMEQUEST_STATE_DIR", t.TempDir())
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	creds, err := credentials.NewStore(cfg.CredentialsPath())
	require.NoError(t, err)
	return New(cfg, creds, nil), creds
}

func loginAdmin(t *testing.T, client *Client) {
	t.Helper()
	_, err := client.Auth().Login(context.Background(), stub.SeedAdminPhone, stub.SeedAdminPassword)
	require.NoError(t, err)
}

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, creds := newTestClient(t, srv.URL)

	resp, err := client.Auth().Login(context.Background(), stub.SeedAdminPhone, stub.SeedAdminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Role)

	assert.True(t, creds.IsAuthenticated())
	assert.Equal(t, resp.Token, creds.Token())
	require.NotNil(t, creds.CurrentUser())
	assert.Equal(t, stub.SeedAdminPhone, creds.CurrentUser().Phone)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, creds := newTestClient(t, srv.URL)

	_, err := client.Auth().Login(context.Background(), stub.SeedAdminPhone, "wrong")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
	assert.False(t, creds.IsAuthenticated())
}

func TestCreateRefreshesMountedList(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	handle := client.Properties().List(models.PropertyFilter{Limit: 10})
	defer handle.Unsubscribe()

	page, err := handle.Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page.Items, "a fresh backend starts with no properties")
	assert.Zero(t, page.Total)

	created, err := client.Properties().Create(context.Background(), models.PropertyInput{
		Title: "Lakeside Cottage",
		Price: 250000,
		City:  "Pokhara",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// The mounted list view refetches via the invalidation wave; no
	// manual refetch happens here.
	require.Eventually(t, func() bool {
		page, err := handle.Wait(context.Background())
		return err == nil && len(page.Items) == 1
	}, 2*time.Second, 10*time.Millisecond)

	page, err = handle.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Lakeside Cottage", page.Items[0].Title)
	assert.Equal(t, int64(1), page.Total)
}

func TestDeleteRefreshesMountedList(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	created, err := client.Properties().Create(context.Background(), models.PropertyInput{Title: "Doomed Flat", Price: 1})
	require.NoError(t, err)

	handle := client.Properties().List(models.PropertyFilter{Limit: 10})
	defer handle.Unsubscribe()
	page, err := handle.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	require.NoError(t, client.Properties().Delete(context.Background(), created.ID))
	require.Eventually(t, func() bool {
		page, err := handle.Wait(context.Background())
		return err == nil && len(page.Items) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestVisitLifecycleRefreshesMountedList(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	handle := client.Visits().List(models.ListParams{Limit: 10})
	defer handle.Unsubscribe()

	page, err := handle.Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	visit, err := client.Visits().Schedule(context.Background(), models.VisitInput{
		PropertyID:  "prop-1",
		ScheduledAt: time.Now().Add(48 * time.Hour).UTC(),
		Note:        "prefers morning",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", visit.Status)

	require.Eventually(t, func() bool {
		page, err := handle.Wait(context.Background())
		return err == nil && len(page.Items) == 1
	}, 2*time.Second, 10*time.Millisecond)

	confirmed, err := client.Visits().Confirm(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	// Confirm invalidates the visit's item tag, which the list provides.
	require.Eventually(t, func() bool {
		page, err := handle.Wait(context.Background())
		return err == nil && len(page.Items) == 1 && page.Items[0].Status == "confirmed"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduleVisitRequiresProperty(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	_, err := client.Visits().Schedule(context.Background(), models.VisitInput{Note: "no property"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "property_id is required", appErr.UserMessage)
}

func TestUnauthorizedResponseClearsPersistedSession(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, creds := newTestClient(t, srv.URL)

	require.NoError(t, creds.Set("forged-token", &models.User{ID: "x"}))

	handle := client.Properties().List(models.PropertyFilter{})
	defer handle.Unsubscribe()
	_, err := handle.Wait(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)

	assert.False(t, creds.IsAuthenticated())
	assert.Empty(t, creds.Token(), "the auth gate wipes the in-memory session")
}

func TestLegacyListShapeIsNormalized(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	_, err := client.Agents().Create(context.Background(), models.AgentInput{FullName: "Ram Thapa", Phone: "9811111111"})
	require.NoError(t, err)

	handle := client.Agents().List(models.AgentFilter{Limit: 10})
	defer handle.Unsubscribe()
	page, err := handle.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "the {results,count} envelope decodes into the canonical page")
	assert.Equal(t, "Ram Thapa", page.Items[0].FullName)
	assert.Equal(t, int64(1), page.Total)
}

func TestMutationSucceedsAfterTransientServerFailures(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"detail":"warming up"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1","title":"Retried Flat"}`))
	}))
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)

	created, err := client.Properties().Create(context.Background(), models.PropertyInput{Title: "Retried Flat", Price: 1})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, int64(3), calls.Load())
}

func TestValidationErrorSurfacesServerDetail(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	_, err := client.Properties().Create(context.Background(), models.PropertyInput{Price: 100})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "title is required", appErr.UserMessage)
}

func TestBugReportWithMediaRoundTrip(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	bug, err := client.Bugs().CreateWithMedia(context.Background(), models.BugReportInput{
		Title:       "map tiles missing",
		Description: "zoom level 14 renders blank",
		Severity:    "major",
	}, "blank-map.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, "map tiles missing", bug.Title)
	assert.Equal(t, "open", bug.Status)
	require.Len(t, bug.MediaURLs, 1)
	assert.Contains(t, bug.MediaURLs[0], "blank-map.png")
}

func TestUploadReturnsServedURL(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()
	client, _ := newTestClient(t, srv.URL)
	loginAdmin(t, client)

	res, err := client.Upload().File(context.Background(), "cover.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Contains(t, res.URL, "cover.jpg")
	assert.Equal(t, "cover.jpg", res.FileName)
	assert.Equal(t, int64(len("jpeg-bytes")), res.Size)
}

func TestSessionFileRemovedAfterUnauthorized(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("it-secret").Router())
	defer srv.Close()

	stateDir := t.TempDir()
	t.Setenv("HOMEQUEST_API_URL", srv.URL)
	t.Setenv("HOMEQUEST_STATE_DIR", stateDir)
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	creds, err := credentials.NewStore(cfg.CredentialsPath())
	require.NoError(t, err)
	client := New(cfg, creds, nil)

	require.NoError(t, creds.Set("forged-token", nil))
	require.FileExists(t, filepath.Join(stateDir, "session.json"))

	handle := client.Properties().List(models.PropertyFilter{})
	defer handle.Unsubscribe()
	_, err = handle.Wait(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(stateDir, "session.json"))
	assert.True(t, os.IsNotExist(statErr), "the persisted session is wiped, not just the in-memory copy")
}
