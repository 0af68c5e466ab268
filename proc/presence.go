package proc

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/gateway"
	"github.com/leeineian/ghost/sys"
)

// ActiveLister reports the sessions currently running.
type ActiveLister interface {
	Active() []sys.TrollSession
}

// PresenceRotator cycles the bot's "Playing" status between the command hint and live troll stats.
type PresenceRotator struct {
	client    *bot.Client
	sessions  ActiveLister
	base      string
	startTime time.Time
	rng       *rand.Rand
	last      string
}

func NewPresenceRotator(client *bot.Client, sessions ActiveLister, base string) *PresenceRotator {
	return &PresenceRotator{
		client:    client,
		sessions:  sessions,
		base:      base,
		startTime: time.Now(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func rotationInterval(rng *rand.Rand) time.Duration {
	return time.Duration(15+rng.Intn(46)) * time.Second
}

// Run updates the presence until ctx is cancelled.
func (r *PresenceRotator) Run(ctx context.Context) {
	for {
		next := rotationInterval(r.rng)
		r.update(ctx, next)
		select {
		case <-time.After(next):
		case <-ctx.Done():
			return
		}
	}
}

func (r *PresenceRotator) update(ctx context.Context, next time.Duration) {
	statuses := presenceStatuses(r.base, len(r.sessions.Active()), time.Since(r.startTime))
	selected := pickStatus(r.rng, statuses, r.last)
	r.last = selected

	err := r.client.SetPresence(ctx,
		gateway.WithOnlineStatus(discord.OnlineStatusOnline),
		gateway.WithPlayingActivity(selected),
	)
	if err != nil {
		sys.LogPresence(sys.MsgPresenceUpdateFail, err)
		return
	}
	sys.LogDebug(sys.MsgPresenceRotated, selected, next)
}

// presenceStatuses always includes the base text; the troll count only shows while sessions run.
func presenceStatuses(base string, active int, uptime time.Duration) []string {
	statuses := []string{base}
	if active > 0 {
		statuses = append(statuses, fmt.Sprintf(sys.MsgPresenceTrolling, active))
	}
	statuses = append(statuses, fmt.Sprintf(sys.MsgPresenceUptime, int(uptime.Hours()), int(uptime.Minutes())%60))
	return statuses
}

// pickStatus avoids repeating last unless it is the only choice.
func pickStatus(rng *rand.Rand, statuses []string, last string) string {
	var choices []string
	for _, s := range statuses {
		if s != last {
			choices = append(choices, s)
		}
	}
	if len(choices) == 0 {
		return statuses[0]
	}
	return choices[rng.Intn(len(choices))]
}
