package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vietanh2810/prompt-rewards-api/internal/config"
	"github.com/vietanh2810/prompt-rewards-api/internal/pkg/jwthelper"
)

const testSigningKey = "server-test-signing-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := NewServer(&config.AppConfig{
		API: &config.APIConfig{
			Port:               "8080",
			BaseURL:            "localhost:8080",
			AllowedCORSDomains: []string{"http://localhost:3000"},
			JWTSigningKey:      testSigningKey,
		},
		Gin:      &config.GinConfig{Mode: "test"},
		Postgres: &config.PostgresConfig{},
		Rewards:  &config.RewardsConfig{LootSeed: 7, MaxLootRolls: 25},
	}, db)
	require.NoError(t, err)

	return s
}

func TestNewServer_Routes(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, 25, s.Distributor.MaxRolls())

	memberToken, err := jwthelper.GenerateToken(testSigningKey, 1, false, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"healthcheck", http.MethodGet, "/", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"swagger", http.MethodGet, "/swagger/doc.json", "", http.StatusOK},
		{"submissions need a token", http.MethodPost, "/api/v1/submissions", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/users/1", "nope", http.StatusUnauthorized},
		{"admin needs staff", http.MethodGet, "/api/v1/admin/submissions", memberToken, http.StatusForbidden},
		{"approve needs staff", http.MethodPost, "/api/v1/admin/submissions/1/approve", memberToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			w := httptest.NewRecorder()
			s.Router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestServer_DistributorReload(t *testing.T) {
	s := newTestServer(t)

	s.Distributor.SetMaxRolls(3)
	assert.Equal(t, 3, s.Distributor.MaxRolls())

	s.Distributor.SetMaxRolls(0)
	assert.Equal(t, 100, s.Distributor.MaxRolls())
}
