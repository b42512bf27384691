package controllers

import (
	"github.com/adamanr/workflow_portal/internal/entity"
)

func (d *Dependens) recordActivity(s *Session, typ entity.ActivityType, action string) {
	now := d.Clock.Now()
	s.Workspace.Activities.Insert(func(id uint64) entity.Activity {
		return entity.Activity{ID: id, Action: action, Actor: s.Identity.Name, Type: typ, Time: now}
	})
}
