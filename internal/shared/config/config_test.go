package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 6, cfg.Draw.MinStamps)
	assert.Equal(t, 5, cfg.Draw.DefaultWinnerCount)
	assert.Equal(t, "admin", cfg.Draw.AdminPassword)
	assert.Equal(t, DefaultTeams, cfg.Draw.DefaultTeams)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MIN_STAMPS_FOR_LUCKY_DRAW", "4")
	t.Setenv("DEFAULT_TEAMS", " Red , ,Blue")
	t.Setenv("ANNOUNCE_TIMEOUT", "3s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("API_KEY", "legacy-key")

	cfg := Load()

	assert.Equal(t, 4, cfg.Draw.MinStamps)
	assert.Equal(t, []string{"Red", "Blue"}, cfg.Draw.DefaultTeams)
	assert.Equal(t, 3*time.Second, cfg.Announce.Timeout)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "legacy-key", cfg.Announce.GeminiAPIKey)
}

func TestNegativeThresholdFallsBack(t *testing.T) {
	t.Setenv("MIN_STAMPS_FOR_LUCKY_DRAW", "-2")
	assert.Equal(t, 6, Load().Draw.MinStamps)
}

func TestClampAnnounceTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		lockTTL time.Duration
		want    time.Duration
	}{
		{"inside lock", 10 * time.Second, 2 * time.Minute, 10 * time.Second},
		{"zero uses default", 0, 2 * time.Minute, 15 * time.Second},
		{"negative uses default", -time.Second, 2 * time.Minute, 15 * time.Second},
		{"equal to lock", 2 * time.Minute, 2 * time.Minute, time.Minute},
		{"longer than lock", 10 * time.Minute, 2 * time.Minute, time.Minute},
		{"default longer than short lock", 0, 10 * time.Second, 5 * time.Second},
		{"tiny lock", time.Second, time.Nanosecond, time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampAnnounceTimeout(tt.timeout, tt.lockTTL))
		})
	}
}

func TestLoadKeepsAnnouncementInsideDrawLock(t *testing.T) {
	t.Setenv("ANNOUNCE_TIMEOUT", "0")
	cfg := Load()
	assert.Equal(t, 15*time.Second, cfg.Announce.Timeout)
	assert.Less(t, cfg.Announce.Timeout, cfg.Redis.DrawLockTTL)

	t.Setenv("ANNOUNCE_TIMEOUT", "5m")
	t.Setenv("REDIS_DRAW_LOCK_TTL", "1m")
	cfg = Load()
	assert.Equal(t, time.Minute, cfg.Redis.DrawLockTTL)
	assert.Equal(t, 30*time.Second, cfg.Announce.Timeout)

	t.Setenv("REDIS_DRAW_LOCK_TTL", "-1s")
	cfg = Load()
	assert.Equal(t, 2*time.Minute, cfg.Redis.DrawLockTTL)
	assert.Equal(t, time.Minute, cfg.Announce.Timeout)
}
