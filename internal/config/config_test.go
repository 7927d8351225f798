package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "3001", cfg.Port)
		require.Equal(t, []string{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00", "20:00"}, cfg.WorkingHours)
		require.Equal(t, []int{30, 60, 90, 120}, cfg.AllowedDurations)
		require.NotEmpty(t, cfg.Treatments)
		require.Contains(t, cfg.Database.DSN, "spasync")
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("WORKING_HOURS", "09:00, 11:00")
		t.Setenv("ALLOWED_DURATIONS", "45,90")
		t.Setenv("TREATMENTS", "Facial")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, []string{"09:00", "11:00"}, cfg.WorkingHours)
		require.Equal(t, []int{45, 90}, cfg.AllowedDurations)
		require.Equal(t, []string{"Facial"}, cfg.Treatments)
	})

	t.Run("rejects non-numeric durations", func(t *testing.T) {
		t.Setenv("ALLOWED_DURATIONS", "sixty")
		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("rejects non-positive durations", func(t *testing.T) {
		t.Setenv("ALLOWED_DURATIONS", "0")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}
