package controllers

import (
	"testing"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountLeaveDays(t *testing.T) {
	tests := []struct {
		name        string
		from        string
		to          string
		expected    int
		expectError bool
	}{
		{name: "three days", from: "2024-01-20", to: "2024-01-22", expected: 3},
		{name: "same day", from: "2024-01-15", to: "2024-01-15", expected: 1},
		{name: "across month end", from: "2024-01-30", to: "2024-02-02", expected: 4},
		{name: "leap day", from: "2024-02-28", to: "2024-03-01", expected: 3},
		{name: "reversed range", from: "2024-01-22", to: "2024-01-20", expectError: true},
		{name: "bad from date", from: "2024-13-01", to: "2024-01-20", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := CountLeaveDays(tt.from, tt.to)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, days)
		})
	}
}

func TestLeaveController_SubmitLeave(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, employeeEmail)

	leave, err := env.ctrl.LeaveController.SubmitLeave(session, entity.CreateLeaveRequest{
		Type:     entity.LeavePersonal,
		FromDate: "2024-02-05",
		ToDate:   "2024-02-07",
		Reason:   "Moving house",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(4), leave.ID)
	assert.Equal(t, 3, leave.Days)
	assert.Equal(t, entity.LeavePending, leave.Status)
	assert.Equal(t, "EMP001", leave.EmployeeID)
	assert.Equal(t, "John Doe", leave.EmployeeName)

	own, err := env.ctrl.LeaveController.GetLeaves(session, false)
	require.NoError(t, err)
	assert.Len(t, own, 3)
}

func TestLeaveController_SubmitLeaveReversedDates(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, employeeEmail)

	leave, err := env.ctrl.LeaveController.SubmitLeave(session, entity.CreateLeaveRequest{
		Type:     entity.LeaveAnnual,
		FromDate: "2024-02-07",
		ToDate:   "2024-02-05",
		Reason:   "Oops",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, leave)
	assert.Equal(t, 3, session.Workspace.Leaves.Count(nil))
}

func TestLeaveController_GetLeaves(t *testing.T) {
	env := newTestEnv(t)

	employee := env.login(t, employeeEmail)
	_, err := env.ctrl.LeaveController.GetLeaves(employee, true)
	assert.ErrorIs(t, err, ErrForbidden)

	hr := env.login(t, hrEmail)
	all, err := env.ctrl.LeaveController.GetLeaves(hr, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLeaveController_GetPendingLeaves(t *testing.T) {
	env := newTestEnv(t)

	employee := env.login(t, employeeEmail)
	leaves, err := env.ctrl.LeaveController.GetPendingLeaves(employee)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, leaves)

	hr := env.login(t, hrEmail)
	leaves, err = env.ctrl.LeaveController.GetPendingLeaves(hr)
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	for _, leave := range leaves {
		assert.Equal(t, entity.LeavePending, leave.Status)
	}
}

func TestLeaveController_Decide(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		id        uint64
		approve   bool
		expected  entity.LeaveStatus
		expectErr error
	}{
		{name: "hr approves pending", email: hrEmail, id: 1, approve: true, expected: entity.LeaveApproved},
		{name: "admin rejects pending", email: adminEmail, id: 2, expected: entity.LeaveRejected},
		{name: "approved can not be rejected", email: hrEmail, id: 3, expectErr: ErrInvalidTransition},
		{name: "approved can not be approved again", email: hrEmail, id: 3, approve: true, expectErr: ErrInvalidTransition},
		{name: "unknown leave", email: hrEmail, id: 99, approve: true, expectErr: ErrNotFound},
		{name: "employee may not decide", email: employeeEmail, id: 1, approve: true, expectErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			session := env.login(t, tt.email)
			before := session.Workspace.Leaves.List(nil)

			var (
				leave *entity.LeaveRequest
				err   error
			)
			if tt.approve {
				leave, err = env.ctrl.LeaveController.ApproveLeave(session, tt.id)
			} else {
				leave, err = env.ctrl.LeaveController.RejectLeave(session, tt.id)
			}

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, leave)
				assert.Equal(t, before, session.Workspace.Leaves.List(nil))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, leave.Status)
			assert.Equal(t, session.Identity.Name, leave.DecidedBy)

			decision := "reject"
			if tt.approve {
				decision = "approve"
			}
			assert.Equal(t, float64(1), testutil.ToFloat64(env.deps.Metrics.LeaveDecisions.WithLabelValues(decision)))
		})
	}
}

func TestLeaveController_DecisionIsFinal(t *testing.T) {
	env := newTestEnv(t)
	hr := env.login(t, hrEmail)

	_, err := env.ctrl.LeaveController.RejectLeave(hr, 1)
	require.NoError(t, err)

	_, err = env.ctrl.LeaveController.ApproveLeave(hr, 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, ok := hr.Workspace.Leaves.Get(1)
	require.True(t, ok)
	assert.Equal(t, entity.LeaveRejected, stored.Status)
}

func TestLeaveController_GetLeave(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		id        uint64
		expectErr error
	}{
		{name: "own request", email: employeeEmail, id: 1},
		{name: "someone else's request", email: employeeEmail, id: 2, expectErr: ErrNotFound},
		{name: "hr sees any request", email: hrEmail, id: 2},
		{name: "admin sees any request", email: adminEmail, id: 3},
		{name: "unknown request", email: hrEmail, id: 42, expectErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			session := env.login(t, tt.email)

			leave, err := env.ctrl.LeaveController.GetLeave(session, tt.id)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, leave)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, leave.ID)
		})
	}
}
