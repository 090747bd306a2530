package main

import (
	"net/http/httptest"
	"testing"

	"ClinicAdmin/cache"
	"ClinicAdmin/config"
	"ClinicAdmin/notification"
	"ClinicAdmin/repository/repotest"
	"ClinicAdmin/services"

	server "github.com/KanapuramVaishnavi/Core/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestRun_FullCoverage(t *testing.T) {
	isTest = true
	defer func() { isTest = false }()

	var capturedOpts server.Options

	// intercept options
	startServer = func(opts server.Options) {
		capturedOpts = opts
	}

	main()
	run()

	assert.False(t, capturedOpts.JobsEnabled)
	assert.False(t, capturedOpts.MigrationEnabled)

	capturedOpts.JobsHandler()
	capturedOpts.MigrationHandler()
	capturedOpts.WebServerPreHandler(gin.New())
}

func TestNewCache(t *testing.T) {
	_, noop := newCache(&config.Config{}).(cache.NoopCache)
	assert.True(t, noop)

	_, shared := newCache(&config.Config{CacheEnabled: true}).(*cache.CoreCache)
	assert.True(t, shared)
}

func TestApplication_BuiltOnce(t *testing.T) {
	calls := 0
	app := &application{
		cfg: &config.Config{WSBuffer: 8, CORSOrigins: []string{"*"}},
		database: func() *mongo.Database {
			calls++
			client, err := mongo.NewClient()
			require.NoError(t, err)
			return client.Database("clinic")
		},
	}

	first := app.service()
	deps := app.dependencies()
	assert.Same(t, first, app.service())
	assert.NotNil(t, deps.Admin)
	assert.NotNil(t, deps.WebSocket)
	assert.Equal(t, 1, calls)
}

func TestRoomAccess_UsesCallerFromToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := repotest.NewStore()
	own := store.AddPatient(false)
	other := store.AddPatient(false)
	access := roomAccess(services.NewAdminService(store.Repos(), notification.NewHub(), nil))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/ws", nil)
	c.Set("code", own.UserID.Hex())

	policy, err := access(c)
	require.NoError(t, err)
	assert.True(t, policy(own.ID.Hex()))
	assert.False(t, policy(other.ID.Hex()))

	c.Set("isSuperAdmin", true)
	policy, err = access(c)
	require.NoError(t, err)
	assert.True(t, policy(other.ID.Hex()))
}
