package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyLeaveRequest_Validate(t *testing.T) {
	valid := func() ApplyLeaveRequest {
		return ApplyLeaveRequest{LeaveType: LeaveTypeSick, FromDate: "2025-02-03", ToDate: "2025-02-05", Reason: "flu"}
	}
	tests := []struct {
		name    string
		mutate  func(*ApplyLeaveRequest)
		wantErr string
	}{
		{"valid", func(*ApplyLeaveRequest) {}, ""},
		{"single day", func(r *ApplyLeaveRequest) { r.ToDate = r.FromDate }, ""},
		{"missing type", func(r *ApplyLeaveRequest) { r.LeaveType = "" }, "leave_type"},
		{"unknown type", func(r *ApplyLeaveRequest) { r.LeaveType = "vacation" }, "leave_type"},
		{"missing from", func(r *ApplyLeaveRequest) { r.FromDate = " " }, "from_date"},
		{"bad to", func(r *ApplyLeaveRequest) { r.ToDate = "05/02/2025" }, "to_date"},
		{"inverted range", func(r *ApplyLeaveRequest) { r.ToDate = "2025-02-01" }, "to_date"},
		{"blank reason", func(r *ApplyLeaveRequest) { r.Reason = "  " }, "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestApplyLeaveRequest_DropsBlankAttachment(t *testing.T) {
	blank := " "
	req := ApplyLeaveRequest{LeaveType: LeaveTypeOther, FromDate: "2025-02-03", ToDate: "2025-02-03", Reason: "x", AttachmentURL: &blank}
	assert.NoError(t, req.Validate())
	assert.Nil(t, req.AttachmentURL)
}

func TestBulkReviewLeaveRequest_Validate(t *testing.T) {
	assert.NoError(t, (&BulkReviewLeaveRequest{IDs: []string{"a", "b"}, Decision: LeaveRequestStatusApproved}).Validate())
	assert.Error(t, (&BulkReviewLeaveRequest{Decision: LeaveRequestStatusApproved}).Validate())
	assert.Error(t, (&BulkReviewLeaveRequest{IDs: []string{"a", "a"}, Decision: LeaveRequestStatusRejected}).Validate())
	assert.Error(t, (&BulkReviewLeaveRequest{IDs: []string{"a"}, Decision: LeaveRequestStatusPending}).Validate())
}

func TestSpanDaysAndLabel(t *testing.T) {
	assert.Equal(t, 1, SpanDays("2025-02-03", "2025-02-03"))
	assert.Equal(t, 7, SpanDays("2025-02-03T00:00:00.000Z", "2025-02-09"))
	assert.Equal(t, 0, SpanDays("2025-02-09", "2025-02-03"))
	assert.Equal(t, 0, SpanDays("", "2025-02-03"))

	assert.Equal(t, "Comp Off", LeaveTypeCompOff.Label())
	assert.Equal(t, "Study-Leave", LeaveType("study-leave").Label())
	assert.Equal(t, LeaveRequestStatusPending, NormalizeStatus("PENDING "))
	assert.Equal(t, LeaveRequestStatusRejected, NormalizeStatus("Rejected"))
}
