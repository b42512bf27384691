package database

import (
	"sync"

	"github.com/adamanr/workflow_portal/internal/entity"
)

const (
	ModeSession = "session"
	ModeShared  = "shared"
)

// Workspace holds one copy of every collection.
type Workspace struct {
	Tasks       *Collection[entity.Task]
	Leaves      *Collection[entity.LeaveRequest]
	Tickets     *Collection[entity.SupportTicket]
	Holidays    *Collection[entity.Holiday]
	Payslips    *Collection[entity.Payslip]
	Departments *Collection[entity.Department]
	Users       *Collection[entity.User]
	Activities  *Collection[entity.Activity]

	settingsMu sync.RWMutex
	settings   entity.Settings
}

func NewWorkspace(seed *Seed) *Workspace {
	if seed == nil {
		seed = &Seed{}
	}

	return &Workspace{
		Tasks:       NewCollection(seed.Tasks...),
		Leaves:      NewCollection(seed.Leaves...),
		Tickets:     NewCollection(seed.Tickets...),
		Holidays:    NewCollection(seed.Holidays...),
		Payslips:    NewCollection(seed.Payslips...),
		Departments: NewCollection(seed.Departments...),
		Users:       NewCollection(seed.Users...),
		Activities:  NewCollection(seed.Activities...),
		settings:    seed.Settings,
	}
}

func (w *Workspace) Settings() entity.Settings {
	w.settingsMu.RLock()
	defer w.settingsMu.RUnlock()

	return w.settings
}

func (w *Workspace) SetSettings(s entity.Settings) {
	w.settingsMu.Lock()
	defer w.settingsMu.Unlock()

	w.settings = s
}

// Workspaces hands out workspaces to new sessions. In session mode every
// session gets a freshly seeded copy; in shared mode all sessions get the same one.
type Workspaces struct {
	mode   string
	seed   *Seed
	shared *Workspace
}

func NewWorkspaces(mode string, seed *Seed) *Workspaces {
	w := &Workspaces{mode: mode, seed: seed}
	if mode == ModeShared {
		w.shared = NewWorkspace(seed)
	}

	return w
}

func (w *Workspaces) Open() *Workspace {
	if w.shared != nil {
		return w.shared
	}

	return NewWorkspace(w.seed)
}
