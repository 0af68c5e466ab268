package sys

import (
	"slices"

	"github.com/disgoorg/snowflake/v2"
)

// RoleStore persists the allow-list as an ordered JSON array of role IDs.
type RoleStore struct {
	file *JSONFile[snowflake.ID]
}

func NewRoleStore(path string) *RoleStore {
	return &RoleStore{file: NewJSONFile[snowflake.ID](path)}
}

// Add appends roleID unless it is already present.
func (s *RoleStore) Add(roleID snowflake.ID) (bool, error) {
	added := false
	err := s.file.Update(func(roles []snowflake.ID) []snowflake.ID {
		if slices.Contains(roles, roleID) {
			return roles
		}
		added = true
		return append(roles, roleID)
	})
	return added, err
}

// Remove drops roleID. Removing a role that is not listed is a no-op.
func (s *RoleStore) Remove(roleID snowflake.ID) (bool, error) {
	removed := false
	err := s.file.Update(func(roles []snowflake.ID) []snowflake.ID {
		kept := roles[:0]
		for _, id := range roles {
			if id == roleID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		return kept
	})
	return removed, err
}

func (s *RoleStore) List() []snowflake.ID {
	return s.file.Load()
}

func (s *RoleStore) Contains(roleID snowflake.ID) bool {
	return slices.Contains(s.List(), roleID)
}
