package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

func TestRegistry_OnConnect(t *testing.T) {
	t.Run("Assigns X, then O, then spectators", func(t *testing.T) {
		// Given: an empty registry
		registry := NewRegistry()

		// When: four sessions connect
		first := registry.OnConnect("s1")
		second := registry.OnConnect("s2")
		third := registry.OnConnect("s3")
		fourth := registry.OnConnect("s4")

		// Then: the first two get the roles, the rest watch
		assert.Equal(t, entity.PlayerX, first.Mark)
		assert.Equal(t, entity.PlayerO, second.Mark)
		assert.True(t, third.IsSpectator())
		assert.True(t, fourth.IsSpectator())
		assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, registry.Sessions())
	})

	t.Run("Connecting twice keeps the first assignment", func(t *testing.T) {
		registry := NewRegistry()

		registry.OnConnect("s1")
		again := registry.OnConnect("s1")
		second := registry.OnConnect("s2")

		assert.Equal(t, entity.PlayerX, again.Mark)
		assert.Equal(t, entity.PlayerO, second.Mark)
		assert.Equal(t, 2, registry.Len())
	})
}

func TestRegistry_OnDisconnect(t *testing.T) {
	t.Run("Freed X goes to the next connection", func(t *testing.T) {
		// Given: X, O and a spectator are connected
		registry := NewRegistry()
		registry.OnConnect("s1")
		registry.OnConnect("s2")
		registry.OnConnect("s3")

		// When: the X holder leaves and a new session connects
		registry.OnDisconnect("s1")
		newcomer := registry.OnConnect("s4")

		// Then: the newcomer gets X, the spectator keeps watching
		assert.Equal(t, entity.PlayerX, newcomer.Mark)
		assert.Equal(t, entity.Spectator, registry.RoleOf("s3"))
		assert.Equal(t, entity.PlayerO, registry.RoleOf("s2"))
	})

	t.Run("Freed O goes to the next connection", func(t *testing.T) {
		registry := NewRegistry()
		registry.OnConnect("s1")
		registry.OnConnect("s2")

		registry.OnDisconnect("s2")

		assert.Equal(t, entity.PlayerO, registry.OnConnect("s3").Mark)
	})

	t.Run("Spectator leaving frees nothing", func(t *testing.T) {
		registry := NewRegistry()
		registry.OnConnect("s1")
		registry.OnConnect("s2")
		registry.OnConnect("s3")

		registry.OnDisconnect("s3")

		assert.True(t, registry.OnConnect("s4").IsSpectator())
	})

	t.Run("Unknown session is ignored", func(t *testing.T) {
		registry := NewRegistry()
		registry.OnConnect("s1")

		require.NotPanics(t, func() { registry.OnDisconnect("missing") })
		assert.Equal(t, entity.PlayerX, registry.RoleOf("s1"))
	})
}

func TestRegistry_RoleOf(t *testing.T) {
	registry := NewRegistry()
	registry.OnConnect("s1")

	assert.Equal(t, entity.PlayerX, registry.RoleOf("s1"))
	assert.Equal(t, entity.Spectator, registry.RoleOf("unknown"))
}
