package users

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gomeraway-api/internal/app/http/middleware"
	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/users"
	"gomeraway-api/internal/infra/supabase"
	"gomeraway-api/internal/session"
	"gomeraway-api/internal/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var me = &supabase.Identity{
	ID:        "c2a4e6f8-1b3d-4f5a-8c7e-9d0b2a4c6e81",
	Email:     "maria@example.com",
	SessionID: "sess-9",
	ExpiresAt: time.Now().Add(time.Hour),
}

func newRouter(f *storetest.Fake) (*gin.Engine, *session.Manager) {
	gin.SetMode(gin.TestMode)
	manager := session.NewManager(f, session.NewHub(), nil)
	h := NewHandler(f, manager, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, me)
		c.Next()
	})
	r.POST("/session/sync", h.SyncSession)
	r.GET("/session/events", h.SessionEvents)
	r.GET("/me", h.GetCurrentUser)
	r.PATCH("/profile", h.UpdateProfile)
	r.GET("/profile/completion", h.ProfileCompletion)
	return r, manager
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSyncSessionCreatesProfile(t *testing.T) {
	f := storetest.New()
	r, _ := newRouter(f)

	w := serve(r, http.MethodPost, "/session/sync", "")

	require.Equal(t, http.StatusOK, w.Code)
	var st session.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.NotNil(t, st.Profile)
	assert.Equal(t, users.RoleUser, st.Profile.Role)
	assert.Equal(t, "sess-9", st.Session.ID)
	assert.Empty(t, st.Error)
	assert.Contains(t, f.Profiles, me.ID)
}

func TestSyncSessionDegradedState(t *testing.T) {
	f := storetest.New()
	f.Fail("GetProfile", storetest.ErrUnavailable)
	r, _ := newRouter(f)

	w := serve(r, http.MethodPost, "/session/sync", "")

	require.Equal(t, http.StatusOK, w.Code)
	var st session.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.NotEmpty(t, st.Error)
	assert.Equal(t, me.ID, st.User.ID)
	assert.Nil(t, st.Profile)
}

func TestGetCurrentUser(t *testing.T) {
	f := storetest.New()
	r, _ := newRouter(f)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/me", "").Code)

	f.Profiles[me.ID] = users.Profile{ID: me.ID, Email: me.Email, FullName: "María", Role: users.RoleAdmin}
	f.Subscriptions[me.ID] = billing.Subscription{UserID: me.ID, Plan: "diamante", Status: billing.StatusActive}

	w := serve(r, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, me.ID, resp.User.ID)
	assert.Equal(t, "María", resp.Profile.FullName)
	assert.Nil(t, resp.Profile.Phone)
	require.NotNil(t, resp.Billing.Plan)
	assert.Equal(t, 999, resp.Billing.Plan.MaxListings)
	assert.True(t, resp.Billing.Plan.IsUnlimited)
	assert.True(t, resp.Access.IsAdmin)
	assert.False(t, resp.Access.ProfileComplete)
}

func TestUpdateProfileAndCompletion(t *testing.T) {
	f := storetest.New()
	f.Profiles[me.ID] = users.Profile{ID: me.ID, Email: me.Email, Role: users.RoleUser}
	r, _ := newRouter(f)

	w := serve(r, http.MethodGet, "/profile/completion", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"complete":false,"missing":["full_name","phone","address","city","postal_code","date_of_birth"]}`, w.Body.String())

	w = serve(r, http.MethodPatch, "/profile", `{"full_name":"María","phone":"600","address":"Calle Real 3","city":"Vallehermoso","postal_code":"38840","date_of_birth":"1985-11-30","role":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, f.Profiles[me.ID].ProfileCompleted)
	assert.Equal(t, users.RoleUser, f.Profiles[me.ID].Role)

	w = serve(r, http.MethodGet, "/profile/completion", "")
	assert.JSONEq(t, `{"complete":true,"missing":[]}`, w.Body.String())
}

func TestUpdateProfileRejectsBadDate(t *testing.T) {
	f := storetest.New()
	f.Profiles[me.ID] = users.Profile{ID: me.ID, Email: me.Email}
	r, _ := newRouter(f)

	w := serve(r, http.MethodPatch, "/profile", `{"date_of_birth":"30/11/1985"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, f.WriteCount())
}

func TestSessionEventsStreamsStates(t *testing.T) {
	f := storetest.New()
	r, manager := newRouter(f)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/session/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readUntil := func(prefix string) string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, prefix) {
				return line
			}
		}
	}

	readUntil("event:ready")
	require.Eventually(t, func() bool { return manager.Hub().Subscribers(me.ID) == 1 }, time.Second, 5*time.Millisecond)

	manager.Sync(context.Background(), me)

	readUntil("event:session")
	data := readUntil("data:")
	assert.Contains(t, data, me.ID)
	assert.Contains(t, data, `"role":"user"`)
}
