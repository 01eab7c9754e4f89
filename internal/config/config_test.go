package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 3, cfg.Game.TotalRounds)
	assert.Equal(t, 80, cfg.Game.TurnSeconds)
	assert.Equal(t, 3, cfg.Game.GraceSeconds)
	assert.Equal(t, 3, cfg.Game.WordChoices)
	assert.True(t, cfg.Game.AutoSkipDrawerLeave)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "8080"
game:
  totalrounds: 5
  turnseconds: 45
  autoskipdrawerleave: false
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Game.TotalRounds)
	assert.Equal(t, 45, cfg.Game.TurnSeconds)
	assert.False(t, cfg.Game.AutoSkipDrawerLeave)
	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.Game.GraceSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOTAL_ROUNDS", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Game.TotalRounds)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("TOTAL_ROUNDS", "0")

	_, err := Load("")
	require.Error(t, err)
}

func TestRules_Mapping(t *testing.T) {
	g := GameSettings{TotalRounds: 4, TurnSeconds: 30, GraceSeconds: 2, WordChoices: 5, AutoSkipDrawerLeave: true}
	r := g.Rules()

	assert.Equal(t, 4, r.TotalRounds)
	assert.Equal(t, 30, r.TurnSeconds)
	assert.Equal(t, 2, r.GraceSeconds)
	assert.Equal(t, 5, r.WordChoices)
	assert.True(t, r.AutoSkipDrawerLeave)
}
