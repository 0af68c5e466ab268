package sys

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func TestAccessPolicy(t *testing.T) {
	t.Parallel()

	owner := snowflake.ID(555555555555555555)
	policy := NewAccessPolicy([]snowflake.ID{owner})
	allowed := []snowflake.ID{roleA}

	tests := []struct {
		name      string
		actor     Actor
		canManage bool
		isAllowed bool
	}{
		{
			name:      "owner",
			actor:     Actor{UserID: owner},
			canManage: true,
			isAllowed: true,
		},
		{
			name:      "administrator",
			actor:     Actor{UserID: userA, Permissions: discord.PermissionAdministrator | discord.PermissionSendMessages},
			canManage: true,
			isAllowed: true,
		},
		{
			name:      "allowed role",
			actor:     Actor{UserID: userA, RoleIDs: []snowflake.ID{roleB, roleA}},
			isAllowed: true,
		},
		{
			name:  "unrelated role",
			actor: Actor{UserID: userA, RoleIDs: []snowflake.ID{roleB}, Permissions: discord.PermissionManageMessages},
		},
		{
			name:  "no roles",
			actor: Actor{UserID: userB},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.canManage, policy.CanManage(tt.actor))
			assert.Equal(t, tt.isAllowed, policy.IsAllowed(tt.actor, allowed))
		})
	}
}

func TestAccessPolicyIsMonotonic(t *testing.T) {
	t.Parallel()

	policy := NewAccessPolicy(nil)
	actor := Actor{UserID: userA, RoleIDs: []snowflake.ID{roleB}}

	assert.False(t, policy.IsAllowed(actor, nil))
	assert.True(t, policy.IsAllowed(actor, []snowflake.ID{roleB}))
	assert.True(t, policy.IsAllowed(actor, []snowflake.ID{roleA, roleB}))
}

func TestActorFromMember(t *testing.T) {
	t.Parallel()

	user := discord.User{ID: userA}
	assert.Equal(t, Actor{UserID: userA}, ActorFromMember(user, nil))

	member := &discord.ResolvedMember{
		Member:      discord.Member{User: user, RoleIDs: []snowflake.ID{roleA}},
		Permissions: discord.PermissionAdministrator,
	}
	actor := ActorFromMember(user, member)
	assert.Equal(t, []snowflake.ID{roleA}, actor.RoleIDs)
	assert.True(t, actor.Permissions.Has(discord.PermissionAdministrator))
}
