package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bayrii/drivelog/database"
	"github.com/Bayrii/drivelog/web/entity"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "drivelog-test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("drivelog", memstore.NewStore([]byte("test-secret"))))

	g := engine.Group("/")
	NewIndexController(g)
	panel := engine.Group("/panel")
	NewExperienceController(panel)

	return engine
}

// client keeps the session cookie across requests, like a browser would.
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies []string
}

func (c *client) do(method, path, body string) (*httptest.ResponseRecorder, *entity.Msg) {
	c.t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	for _, cookie := range c.cookies {
		req.Header.Add("Cookie", cookie)
	}

	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	if set := w.Result().Header.Values("Set-Cookie"); len(set) > 0 {
		c.cookies = set
	}

	msg := &entity.Msg{}
	if w.Code == http.StatusOK && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), msg)
	}
	return w, msg
}

const testSubmission = `{
	"date": "2025-06-10",
	"startTime": "08:30",
	"endTime": "09:15",
	"distanceKm": 12.5,
	"vehicleTypeId": 1,
	"timeOfDayId": 1,
	"weatherId": 1,
	"roadTypeId": 1,
	"surfaceId": 1,
	"roadDensityId": 1
}`

func registerAndLogin(t *testing.T, engine *gin.Engine, username string) *client {
	t.Helper()
	c := &client{t: t, engine: engine}

	_, msg := c.do("POST", "/register", `{"username":"`+username+`","password":"s3cret!"}`)
	require.True(t, msg.Success, "register: %s", msg.Msg)

	_, msg = c.do("POST", "/login", `{"username":"`+username+`","password":"s3cret!"}`)
	require.True(t, msg.Success, "login: %s", msg.Msg)
	return c
}

func TestPanelRequiresLogin(t *testing.T) {
	engine := setupTestRouter(t)
	c := &client{t: t, engine: engine}

	w, _ := c.do("GET", "/panel/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	engine := setupTestRouter(t)
	c := &client{t: t, engine: engine}

	_, msg := c.do("POST", "/register", `{"username":"carol","password":"s3cret!"}`)
	require.True(t, msg.Success)

	_, msg = c.do("POST", "/login", `{"username":"carol","password":"nope00"}`)
	assert.False(t, msg.Success)
	assert.Contains(t, msg.Msg, "wrong username or password")
}

func TestAddGetByCodeFlow(t *testing.T) {
	engine := setupTestRouter(t)
	c := registerAndLogin(t, engine, "alice")

	_, msg := c.do("POST", "/panel/experience/add", testSubmission)
	require.True(t, msg.Success, msg.Msg)

	_, msg = c.do("GET", "/panel/experience/code?id=1", "")
	require.True(t, msg.Success, msg.Msg)
	code, ok := msg.Obj.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(code, "EXP-"), "unexpected code %q", code)

	_, msg = c.do("GET", "/panel/experience/get?code="+code, "")
	require.True(t, msg.Success, msg.Msg)
}

func TestCodeIsUselessAfterLogout(t *testing.T) {
	engine := setupTestRouter(t)
	c := registerAndLogin(t, engine, "alice")

	_, msg := c.do("POST", "/panel/experience/add", testSubmission)
	require.True(t, msg.Success, msg.Msg)

	_, msg = c.do("GET", "/panel/experience/code?id=1", "")
	require.True(t, msg.Success, msg.Msg)
	code := msg.Obj.(string)

	c.do("GET", "/logout", "")

	// Log back in: a fresh session, the old code no longer resolves.
	_, msg = c.do("POST", "/login", `{"username":"alice","password":"s3cret!"}`)
	require.True(t, msg.Success, msg.Msg)

	_, msg = c.do("GET", "/panel/experience/get?code="+code, "")
	assert.False(t, msg.Success)
	assert.Contains(t, msg.Msg, "invalid or expired")
}

func TestForeignRecordLooksMissing(t *testing.T) {
	engine := setupTestRouter(t)

	alice := registerAndLogin(t, engine, "alice")
	_, msg := alice.do("POST", "/panel/experience/add", testSubmission)
	require.True(t, msg.Success, msg.Msg)

	bob := registerAndLogin(t, engine, "bob")
	_, got := bob.do("GET", "/panel/experience/get?id=1", "")
	assert.False(t, got.Success)
	assert.Contains(t, got.Msg, "not found")

	_, missing := bob.do("GET", "/panel/experience/get?id=999", "")
	assert.Equal(t, missing.Msg, got.Msg, "foreign and missing records must be indistinguishable")
}

func TestValidationReportsEveryViolation(t *testing.T) {
	engine := setupTestRouter(t)
	c := registerAndLogin(t, engine, "alice")

	body := `{"date": "2025-06-10", "startTime": "08:30", "endTime": "09:15",
		"timeOfDayId": 1, "weatherId": 1, "roadTypeId": 1, "surfaceId": 1, "roadDensityId": 1}`
	_, msg := c.do("POST", "/panel/experience/add", body)
	assert.False(t, msg.Success)
	assert.Contains(t, msg.Msg, "distance")
	assert.Contains(t, msg.Msg, "vehicle type")
}

func TestListHandsOutCodesNotIds(t *testing.T) {
	engine := setupTestRouter(t)
	c := registerAndLogin(t, engine, "alice")

	_, msg := c.do("POST", "/panel/experience/add", testSubmission)
	require.True(t, msg.Success, msg.Msg)

	_, msg = c.do("POST", "/panel/experience/list", `{"page":1}`)
	require.True(t, msg.Success, msg.Msg)

	page, ok := msg.Obj.(map[string]any)
	require.True(t, ok)
	codes, ok := page["codes"].(map[string]any)
	require.True(t, ok)
	require.Len(t, codes, 1)
	for _, code := range codes {
		assert.True(t, strings.HasPrefix(code.(string), "EXP-"))
	}
}
