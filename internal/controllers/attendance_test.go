package controllers

import (
	"testing"
	"time"

	"github.com/adamanr/workflow_portal/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceController_CheckInOut(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, employeeEmail)
	attendance := env.ctrl.AttendanceController

	status := attendance.GetAttendance(session)
	assert.False(t, status.CheckedIn)
	assert.Nil(t, status.Since)
	assert.Equal(t, "0m 0s", status.Elapsed)

	status, err := attendance.CheckIn(session)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	require.NotNil(t, status.Since)
	assert.Equal(t, env.clock.Now(), *status.Since)

	_, err = attendance.CheckIn(session)
	assert.ErrorIs(t, err, timer.ErrSessionActive)

	env.clock.Advance(65 * time.Second)
	env.scheduler.Fire()

	status = attendance.GetAttendance(session)
	assert.Equal(t, int64(65), status.ElapsedSeconds)
	assert.Equal(t, "1m 5s", status.Elapsed)

	status, err = attendance.CheckOut(session)
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)
	assert.Equal(t, "1m 5s", status.Elapsed)
	assert.Equal(t, 0, env.scheduler.active())

	env.clock.Advance(time.Minute)
	env.scheduler.Fire()
	assert.Equal(t, "1m 5s", attendance.GetAttendance(session).Elapsed)

	_, err = attendance.CheckOut(session)
	assert.ErrorIs(t, err, timer.ErrSessionInactive)

	assert.Equal(t, "0m 0s", attendance.Reset(session).Elapsed)
}

func TestAttendanceController_SessionsAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	john := env.login(t, employeeEmail)
	sarah := env.login(t, hrEmail)

	_, err := env.ctrl.AttendanceController.CheckIn(john)
	require.NoError(t, err)

	_, err = env.ctrl.AttendanceController.CheckIn(sarah)
	require.NoError(t, err)
	assert.Equal(t, 2, env.scheduler.active())

	env.ctrl.AuthController.Logout(t.Context(), john)
	assert.Equal(t, 1, env.scheduler.active())
	assert.True(t, env.ctrl.AttendanceController.GetAttendance(sarah).CheckedIn)
}

func TestAttendanceController_OneTimerPerIdentity(t *testing.T) {
	env := newTestEnv(t)
	first := env.login(t, employeeEmail)
	second := env.login(t, employeeEmail)
	attendance := env.ctrl.AttendanceController

	_, err := attendance.CheckIn(first)
	require.NoError(t, err)

	_, err = attendance.CheckIn(second)
	assert.ErrorIs(t, err, timer.ErrSessionActive)
	assert.Equal(t, 1, env.scheduler.active())
	assert.True(t, attendance.GetAttendance(second).CheckedIn)

	env.clock.Advance(10 * time.Second)
	env.scheduler.Fire()
	assert.Equal(t, "0m 10s", attendance.GetAttendance(second).Elapsed)

	env.ctrl.AuthController.Logout(t.Context(), first)
	assert.Equal(t, 1, env.scheduler.active())
	assert.True(t, attendance.GetAttendance(second).CheckedIn)

	status, err := attendance.CheckOut(second)
	require.NoError(t, err)
	assert.Equal(t, "0m 10s", status.Elapsed)

	_, err = attendance.CheckIn(second)
	require.NoError(t, err)

	env.ctrl.AuthController.Logout(t.Context(), second)
	assert.Equal(t, 0, env.scheduler.active())

	third := env.login(t, employeeEmail)
	assert.False(t, attendance.GetAttendance(third).CheckedIn)
}
