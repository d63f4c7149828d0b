package directory

import (
	"context"
	"sync"

	"safecircle/pkg/platform/sentinel"
)

// InMemoryDirectory is a directory fake for tests and single-node demo
// deployments. Production wires whatever directory the surrounding system
// provides.
type InMemoryDirectory struct {
	mu       sync.RWMutex
	users    map[string]UserRef
	families map[string]FamilyRef
	members  map[string][]string // familyID -> userIDs
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{
		users:    make(map[string]UserRef),
		families: make(map[string]FamilyRef),
		members:  make(map[string][]string),
	}
}

// AddUser registers a user.
func (d *InMemoryDirectory) AddUser(user UserRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.ID] = user
}

// AddFamily registers a family and its member user ids.
func (d *InMemoryDirectory) AddFamily(family FamilyRef, memberIDs ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.families[family.ID] = family
	d.members[family.ID] = append([]string(nil), memberIDs...)
}

func (d *InMemoryDirectory) FindByID(_ context.Context, userID string) (UserRef, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if user, ok := d.users[userID]; ok {
		return user, nil
	}
	return UserRef{}, sentinel.ErrNotFound
}

func (d *InMemoryDirectory) FamiliesOf(_ context.Context, userID string) ([]FamilyRef, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []FamilyRef
	for familyID, memberIDs := range d.members {
		for _, id := range memberIDs {
			if id == userID {
				out = append(out, d.families[familyID])
				break
			}
		}
	}
	return out, nil
}

func (d *InMemoryDirectory) MembersOf(_ context.Context, familyID string) ([]UserRef, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	memberIDs, ok := d.members[familyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]UserRef, 0, len(memberIDs))
	for _, id := range memberIDs {
		if user, found := d.users[id]; found {
			out = append(out, user)
		}
	}
	return out, nil
}

func (d *InMemoryDirectory) FindByPhoneNumbers(_ context.Context, numbers []string) ([]UserRef, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	wanted := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		wanted[n] = true
	}
	var out []UserRef
	for _, user := range d.users {
		if user.Phone != "" && wanted[user.Phone] {
			out = append(out, user)
		}
	}
	return out, nil
}
