package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/application/container"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/geo"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/database"
	persistence "github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/persistence/store"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/state"
	"github.com/Engnr-Qasim/dreamers-app/internal/presentation/http/routes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type nopSender struct{}

func (nopSender) SendLoginNotification(email.LoginParams) error               { return nil }
func (nopSender) SendReportNotification(email.ReportParams) error             { return nil }
func (nopSender) SendCampaignJoinNotification(email.CampaignJoinParams) error { return nil }

type fixedLocator struct {
	position geo.Position
	err      error
}

func (l fixedLocator) Current(context.Context) (geo.Position, error) {
	return l.position, l.err
}

func newTestRouter(t *testing.T, locator geo.Locator) *gin.Engine {
	t.Helper()

	logger, err := logging.New(&logging.LoggerConfig{})
	require.NoError(t, err)

	db, err := database.NewConnection("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kv, err := store.New(db, logger)
	require.NoError(t, err)

	if locator == nil {
		locator = fixedLocator{err: geo.ErrUnavailable}
	}

	appContainer := container.NewContainer(container.Deps{
		Reports:     persistence.NewStoreReportRepository(kv, logger),
		Campaigns:   persistence.NewStoreCampaignRepository(kv, logger),
		Sessions:    state.NewSessionStore(time.Hour, logger),
		Sender:      nopSender{},
		Locator:     locator,
		Logger:      logger,
		PerfTracker: performance.NewTracker(),
	})

	return routes.SetupRoutes(appContainer)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func loginAs(t *testing.T, router *gin.Engine, name, location, emailAddr string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"name":     name,
		"location": location,
		"email":    emailAddr,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload := decode(t, w)
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPostLoginValidation(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"name":     "   ",
		"location": "Pune",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide both Name and Location to continue.", decode(t, w)["error"])
}

func TestPostLoginSuccess(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"name":     "Asha",
		"location": "Pune",
		"email":    "asha@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "home", payload["screen"])
	assert.NotEmpty(t, payload["token"])

	sessionPayload, ok := payload["session"].(map[string]any)
	require.True(t, ok)
	profile, ok := sessionPayload["profile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Asha", profile["name"])
	assert.Equal(t, "theme-dark1", sessionPayload["theme"])

	progress, ok := payload["progress"].([]any)
	require.True(t, ok)
	assert.Len(t, progress, 4)
}

func TestGatedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodPost, "/api/v1/profile"},
		{http.MethodPost, "/api/v1/reports"},
		{http.MethodPost, "/api/v1/campaigns/join"},
		{http.MethodGet, "/api/v1/dashboard"},
	} {
		w := doJSON(t, router, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)

		payload := decode(t, w)
		assert.Equal(t, "Please login first to access this section.", payload["error"])
		assert.Equal(t, "login", payload["redirect"])
	}
}

func TestGatedRouteRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostReportMultipart(t *testing.T) {
	router := newTestRouter(t, nil)
	token := loginAs(t, router, "Asha", "Pune", "asha@example.com")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("type", "Tree Plantation"))
	require.NoError(t, form.WriteField("location", "Market Road"))
	require.NoError(t, form.WriteField("description", "barren stretch along the road"))
	require.NoError(t, form.WriteField("priority", "High"))
	part, err := form.CreateFormFile("photo", "road.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload := decode(t, w)
	assert.Equal(t, "Report Submitted Successfully!", payload["message"])

	report, ok := payload["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Asha", report["name"])
	assert.Equal(t, "asha@example.com", report["email"])
	assert.Equal(t, "road.jpg", report["photo"])
}

func TestPostReportUnknownType(t *testing.T) {
	router := newTestRouter(t, nil)
	token := loginAs(t, router, "Asha", "Pune", "asha@example.com")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("type", "Pothole Repair"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostCampaignJoin(t *testing.T) {
	router := newTestRouter(t, nil)
	token := loginAs(t, router, "Asha", "Pune", "asha@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/campaigns/join", token, gin.H{
		"campaignName": "Tree Plantation",
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, true, payload["joined"])
	assert.Equal(t, `You have joined the "Tree Plantation" campaign!`, payload["message"])

	t.Run("second join reports no change", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/campaigns/join", token, gin.H{
			"campaignName": "Tree Plantation",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["joined"])
	})
}

func TestPostNavigateLoggedOut(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/navigate", "", gin.H{"screen": "profile"})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, "login", payload["screen"])
	assert.Equal(t, true, payload["redirected"])
	assert.Equal(t, "Please login first to access this section.", payload["notice"])
}

func TestPostNavigateLoggedIn(t *testing.T) {
	router := newTestRouter(t, nil)
	token := loginAs(t, router, "Asha", "Pune", "asha@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/navigate", token, gin.H{"screen": "profile"})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, "profile", payload["screen"])
	assert.Equal(t, false, payload["redirected"])

	// The profile screen resolution carries the fields for form pre-fill.
	profile, ok := payload["profile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Asha", profile["name"])
	assert.Equal(t, "Pune", profile["location"])
}

func TestPostNavigateUnknownScreen(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/navigate", "", gin.H{"screen": "settings"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostProfileUpdate(t *testing.T) {
	router := newTestRouter(t, nil)
	token := loginAs(t, router, "Asha", "Pune", "asha@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/profile", token, gin.H{
		"name":     "Asha Patil",
		"email":    "asha@example.com",
		"phone":    "99999",
		"location": "Pune",
		"desc":     "volunteer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, "Profile Updated!", payload["message"])
	assert.Equal(t, "home", payload["screen"])

	t.Run("dashboard keys off the updated identity", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		profile, ok := decode(t, w)["profile"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Asha Patil", profile["name"])
		assert.Equal(t, "volunteer", profile["desc"])
	})
}

func TestGetLocationDetect(t *testing.T) {
	t.Run("detected", func(t *testing.T) {
		router := newTestRouter(t, fixedLocator{position: geo.Position{Lat: 18.5204, Lon: 73.8567}})

		w := doJSON(t, router, http.MethodGet, "/api/v1/location/detect", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		payload := decode(t, w)
		assert.Equal(t, true, payload["detected"])
		assert.Equal(t, "Lat: 18.520400, Lon: 73.856700", payload["location"])
	})

	t.Run("unavailable", func(t *testing.T) {
		router := newTestRouter(t, fixedLocator{err: errors.New("lookup timed out")})

		w := doJSON(t, router, http.MethodGet, "/api/v1/location/detect", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		payload := decode(t, w)
		assert.Equal(t, false, payload["detected"])
		assert.Equal(t, "Location access denied or unavailable.", payload["message"])
	})
}

func TestPostLogoutThenGatedAccess(t *testing.T) {
	router := newTestRouter(t, nil)
	token := loginAs(t, router, "Asha", "Pune", "asha@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login", decode(t, w)["screen"])

	// The token still decodes but the session is gone.
	w = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConcurrentProfileUpdatesAndDashboardReads(t *testing.T) {
	router := newTestRouter(t, nil)
	token := loginAs(t, router, "Asha", "Pune", "asha@example.com")

	const pairs = 25
	codes := make(chan int, pairs*2)

	var wg sync.WaitGroup
	for i := 0; i < pairs; i++ {
		body, err := json.Marshal(gin.H{
			"name":     fmt.Sprintf("Asha %d", i),
			"email":    "asha@example.com",
			"location": "Pune",
		})
		require.NoError(t, err)

		wg.Add(2)
		go func(body []byte) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/profile", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes <- w.Code
		}(body)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}

	// The session settles on one of the written profiles, never a torn mix.
	w := doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile, ok := decode(t, w)["profile"].(map[string]any)
	require.True(t, ok)
	name, _ := profile["name"].(string)
	assert.Regexp(t, `^Asha \d+$`, name)
	assert.Equal(t, "Pune", profile["location"])
}

func TestGetProgressIsPublic(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/progress", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	progress, ok := decode(t, w)["progress"].([]any)
	require.True(t, ok)
	assert.Len(t, progress, 4)
}
