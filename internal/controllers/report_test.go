package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportController_Export(t *testing.T) {
	tests := []struct {
		kind    ReportKind
		sheet   string
		header  []string
		rowsLen int
	}{
		{kind: ReportAttendance, sheet: "Attendance", header: []string{"ID", "Name", "Email", "Department", "Role", "Status"}, rowsLen: 7},
		{kind: ReportLeaves, sheet: "Leaves", header: []string{"ID", "Employee ID", "Employee", "Type", "From", "To", "Days", "Status", "Decided By"}, rowsLen: 4},
		{kind: ReportPayroll, sheet: "Payroll", header: []string{"ID", "Month", "Employee ID", "Employee", "Amount", "Status"}, rowsLen: 4},
		{kind: ReportPerformance, sheet: "Performance", header: []string{"Employee ID", "Name", "Department", "Tasks", "Completed", "Completion", "Approved Leave Days", "Open Tickets"}, rowsLen: 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			env := newTestEnv(t)
			session := env.login(t, hrEmail)

			buf, err := env.ctrl.ReportController.Export(session, tt.kind)
			require.NoError(t, err)

			f, err := excelize.OpenReader(buf)
			require.NoError(t, err)
			defer f.Close()

			assert.Equal(t, []string{tt.sheet}, f.GetSheetList())

			rows, err := f.GetRows(tt.sheet)
			require.NoError(t, err)
			require.Len(t, rows, tt.rowsLen)
			assert.Equal(t, tt.header, rows[0])

			styleID, err := f.GetCellStyle(tt.sheet, "A1")
			require.NoError(t, err)
			style, err := f.GetStyle(styleID)
			require.NoError(t, err)
			require.NotNil(t, style.Font)
			assert.True(t, style.Font.Bold)
		})
	}
}

func TestReportController_PayrollAmounts(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, adminEmail)

	buf, err := env.ctrl.ReportController.Export(session, ReportPayroll)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	amount, err := f.GetCellValue("Payroll", "E2")
	require.NoError(t, err)
	assert.Equal(t, "5500.00", amount)
}

func TestReportController_Performance(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, hrEmail)

	buf, err := env.ctrl.ReportController.Export(session, ReportPerformance)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Performance")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"EMP001", "John Doe", "Engineering", "3", "1", "33.3%", "1", "1"}, rows[1])
	assert.Equal(t, []string{"EMP003", "Bob Johnson", "Sales", "0", "0", "n/a", "0", "1"}, rows[3])
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, "n/a", completionRate(0, 0))
	assert.Equal(t, "100.0%", completionRate(4, 4))
	assert.Equal(t, "66.7%", completionRate(2, 3))
}

func TestReportController_Errors(t *testing.T) {
	env := newTestEnv(t)

	employee := env.login(t, employeeEmail)
	_, err := env.ctrl.ReportController.Export(employee, ReportPayroll)
	assert.ErrorIs(t, err, ErrForbidden)

	hr := env.login(t, hrEmail)
	_, err = env.ctrl.ReportController.Export(hr, "quarterly")
	assert.ErrorIs(t, err, ErrNotFound)
}
