package controllers

import (
	"sync"

	"github.com/adamanr/workflow_portal/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

// mockPassword is the one password every directory identity accepts.
const mockPassword = "password"

var mockIdentities = []entity.Identity{
	{ID: "1", Name: "John Doe", Email: "john@company.com", Role: entity.RoleEmployee, Department: "Engineering", EmployeeID: "EMP001"},
	{ID: "2", Name: "Sarah Wilson", Email: "sarah@company.com", Role: entity.RoleHR, Department: "Human Resources", EmployeeID: "HR001"},
	{ID: "3", Name: "Michael Chen", Email: "michael@company.com", Role: entity.RoleAdmin, Department: "Administration", EmployeeID: "ADM001"},
}

type directoryEntry struct {
	identity     entity.Identity
	passwordHash []byte
}

type directory struct {
	entries   map[string]directoryEntry
	dummyHash []byte
}

var (
	directoryOnce sync.Once
	sharedDir     *directory
)

func loadDirectory() *directory {
	directoryOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(mockPassword), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}

		dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-directory-password"), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}

		d := &directory{entries: make(map[string]directoryEntry, len(mockIdentities)), dummyHash: dummy}
		for _, id := range mockIdentities {
			d.entries[id.Email] = directoryEntry{identity: id, passwordHash: hash}
		}
		sharedDir = d
	})

	return sharedDir
}

// authenticate runs one bcrypt comparison whether or not the email is known,
// so a miss and a wrong password look the same from outside.
func (d *directory) authenticate(email, password string) (entity.Identity, bool) {
	entry, found := d.entries[email]

	hash := d.dummyHash
	if found {
		hash = entry.passwordHash
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !found {
		return entity.Identity{}, false
	}

	return entry.identity, true
}
