package controllers

import (
	"testing"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(amounts ...string) entity.UploadPayslipsRequest {
	req := entity.UploadPayslipsRequest{Month: "2024-01"}
	for i, a := range amounts {
		req.Entries = append(req.Entries, entity.PayslipEntry{
			EmployeeID:   []string{"EMP001", "EMP002", "EMP003"}[i%3],
			EmployeeName: []string{"John Doe", "Alice Smith", "Bob Johnson"}[i%3],
			Amount:       decimal.RequireFromString(a),
		})
	}
	return req
}

func TestPayslipController_UploadPayslips(t *testing.T) {
	env := newTestEnv(t)
	hr := env.login(t, hrEmail)

	payslips, err := env.ctrl.PayslipController.UploadPayslips(hr, uploadRequest("5500.00", "4800.50"))
	require.NoError(t, err)
	require.Len(t, payslips, 2)

	assert.Equal(t, uint64(4), payslips[0].ID)
	assert.Equal(t, uint64(5), payslips[1].ID)
	assert.Equal(t, entity.PayslipUploaded, payslips[0].Status)
	assert.True(t, decimal.RequireFromString("4800.5").Equal(payslips[1].Amount))

	all, err := env.ctrl.PayslipController.GetPayslips(hr, true)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestPayslipController_UploadRejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		req       entity.UploadPayslipsRequest
		expectErr error
	}{
		{name: "zero amount", email: hrEmail, req: uploadRequest("5500.00", "0"), expectErr: ErrValidation},
		{name: "negative amount", email: adminEmail, req: uploadRequest("-1"), expectErr: ErrValidation},
		{name: "empty batch", email: hrEmail, req: entity.UploadPayslipsRequest{Month: "2024-01"}, expectErr: ErrValidation},
		{name: "bad month", email: hrEmail, req: entity.UploadPayslipsRequest{Month: "January", Entries: uploadRequest("10").Entries}, expectErr: ErrValidation},
		{name: "employee may not upload", email: employeeEmail, req: uploadRequest("10"), expectErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			session := env.login(t, tt.email)

			payslips, err := env.ctrl.PayslipController.UploadPayslips(session, tt.req)

			assert.ErrorIs(t, err, tt.expectErr)
			assert.Nil(t, payslips)
			assert.Equal(t, 3, session.Workspace.Payslips.Count(nil))
		})
	}
}

func TestPayslipController_SendPayslip(t *testing.T) {
	env := newTestEnv(t)
	hr := env.login(t, hrEmail)

	payslips, err := env.ctrl.PayslipController.UploadPayslips(hr, uploadRequest("3000"))
	require.NoError(t, err)

	sent, err := env.ctrl.PayslipController.SendPayslip(hr, payslips[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PayslipSent, sent.Status)

	_, err = env.ctrl.PayslipController.SendPayslip(hr, payslips[0].ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.ctrl.PayslipController.SendPayslip(hr, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPayslipController_GetPayslips(t *testing.T) {
	env := newTestEnv(t)

	employee := env.login(t, employeeEmail)
	own, err := env.ctrl.PayslipController.GetPayslips(employee, false)
	require.NoError(t, err)
	assert.Len(t, own, 3)

	_, err = env.ctrl.PayslipController.GetPayslips(employee, true)
	assert.ErrorIs(t, err, ErrForbidden)
}
