package proc

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPresenceStatuses(t *testing.T) {
	t.Parallel()

	idle := presenceStatuses("/help for commands", 0, 90*time.Minute)
	assert.Equal(t, []string{"/help for commands", "Uptime: 1h 30m"}, idle)

	busy := presenceStatuses("/help for commands", 3, time.Minute)
	assert.Equal(t, []string{"/help for commands", "Trolling 3 member(s)", "Uptime: 0h 1m"}, busy)
}

func TestPickStatusAvoidsRepeats(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	statuses := []string{"a", "b"}
	for range 50 {
		assert.Equal(t, "b", pickStatus(rng, statuses, "a"))
	}
	assert.Equal(t, "a", pickStatus(rng, []string{"a"}, "a"))
}

func TestRotationInterval(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for range 200 {
		d := rotationInterval(rng)
		assert.GreaterOrEqual(t, d, 15*time.Second)
		assert.LessOrEqual(t, d, 60*time.Second)
	}
}
