package database

import (
	_ "embed"
	"fmt"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

//go:embed seed.json5
var defaultSeed []byte

type Seed struct {
	Tasks       []entity.Task          `json:"tasks"`
	Leaves      []entity.LeaveRequest  `json:"leaves"`
	Tickets     []entity.SupportTicket `json:"tickets"`
	Holidays    []entity.Holiday       `json:"holidays"`
	Payslips    []entity.Payslip       `json:"payslips"`
	Departments []entity.Department    `json:"departments"`
	Users       []entity.User          `json:"users"`
	Activities  []entity.Activity      `json:"activities"`
	Settings    entity.Settings        `json:"settings"`
}

func LoadSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := json5.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	return &seed, nil
}

// DefaultSeed returns the bundled sample records.
func DefaultSeed() (*Seed, error) {
	return LoadSeed(defaultSeed)
}
