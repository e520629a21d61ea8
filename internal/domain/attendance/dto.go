package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	BiometricVerified bool     `json:"biometric_verified"`
}

func (r *CheckInRequest) Validate() error {
	errs := validator.Coordinates(nil, "latitude", r.Latitude, "longitude", r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	errs := validator.Coordinates(nil, "latitude", r.Latitude, "longitude", r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CorrectionRequest is a self-service request for a day the employee could not check in.
// Date is YYYY-MM-DD; times are RFC3339.
type CorrectionRequest struct {
	Date         *string `json:"date,omitempty"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Reason       string  `json:"reason"`

	// Parsed by Validate
	ParsedDate         *time.Time `json:"-"`
	ParsedCheckInTime  *time.Time `json:"-"`
	ParsedCheckOutTime *time.Time `json:"-"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.Date != nil {
		if d, ok := validator.IsValidDate(*r.Date); ok {
			r.ParsedDate = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	errs = parseTimeField(errs, "check_in_time", r.CheckInTime, &r.ParsedCheckInTime)
	errs = parseTimeField(errs, "check_out_time", r.CheckOutTime, &r.ParsedCheckOutTime)

	if r.ParsedCheckInTime != nil && r.ParsedCheckOutTime != nil && r.ParsedCheckOutTime.Before(*r.ParsedCheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check_out_time must not be before check_in_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideCorrectionRequest struct {
	RecordID string `json:"record_id"`
	Action   string `json:"action"`
}

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

func (r *DecideCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "record_id",
			Message: "record_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdminEditRequest overwrites only the supplied fields.
type AdminEditRequest struct {
	ID           string  `json:"-"`
	Date         *string `json:"date,omitempty"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       *string `json:"status,omitempty"`

	ParsedDate         *time.Time `json:"-"`
	ParsedCheckInTime  *time.Time `json:"-"`
	ParsedCheckOutTime *time.Time `json:"-"`
}

func (r *AdminEditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Date != nil {
		if d, ok := validator.IsValidDate(*r.Date); ok {
			r.ParsedDate = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	errs = parseTimeField(errs, "check_in_time", r.CheckInTime, &r.ParsedCheckInTime)
	errs = parseTimeField(errs, "check_out_time", r.CheckOutTime, &r.ParsedCheckOutTime)

	if r.Status != nil && validator.IsEmpty(*r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func parseTimeField(errs validator.ValidationErrors, field string, value *string, dst **time.Time) validator.ValidationErrors {
	if value == nil {
		return errs
	}
	t, ok := validator.IsValidDateTime(*value)
	if !ok {
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be an ISO8601 timestamp",
		})
	}
	*dst = &t
	return errs
}

// CompanyAttendanceQuery holds the optional filters of the company listing.
type CompanyAttendanceQuery struct {
	VerificationStatus string `json:"verification_status,omitempty"`
	StartDate          string `json:"start_date,omitempty"`
	EndDate            string `json:"end_date,omitempty"`
}

func (q *CompanyAttendanceQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.VerificationStatus != "" && !validator.IsInSlice(q.VerificationStatus, []string{
		string(VerificationPending), string(VerificationApproved), string(VerificationRejected),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "verification_status",
			Message: "verification_status must be PENDING, APPROVED or REJECTED",
		})
	}
	if q.StartDate != "" {
		if _, ok := validator.IsValidDate(q.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if q.EndDate != "" {
		if _, ok := validator.IsValidDate(q.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter converts a validated query into a repository filter.
func (q CompanyAttendanceQuery) Filter(companyID string) CompanyFilter {
	f := CompanyFilter{CompanyID: companyID}
	if q.VerificationStatus != "" {
		vs := VerificationStatus(q.VerificationStatus)
		f.VerificationStatus = &vs
	}
	if d, ok := validator.IsValidDate(q.StartDate); ok {
		f.From = &d
	}
	if d, ok := validator.IsValidDate(q.EndDate); ok {
		f.To = &d
	}
	return f
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AttendanceResponse struct {
	ID                 string            `json:"id"`
	EmployeeID         string            `json:"employee_id"`
	EmployeeName       string            `json:"employee_name,omitempty"`
	EmployeeEmail      string            `json:"employee_email,omitempty"`
	Designation        string            `json:"designation,omitempty"`
	Department         string            `json:"department,omitempty"`
	Date               string            `json:"date"`
	CheckInTime        *string           `json:"check_in_time,omitempty"`
	CheckOutTime       *string           `json:"check_out_time,omitempty"`
	CheckInLocation    *LocationResponse `json:"check_in_location,omitempty"`
	CheckOutLocation   *LocationResponse `json:"check_out_location,omitempty"`
	Status             string            `json:"status"`
	IsVerified         bool              `json:"is_verified"`
	VerificationStatus string            `json:"verification_status"`
	Method             string            `json:"method"`
	Reason             *string           `json:"reason,omitempty"`
	CreatedAt          string            `json:"created_at"`
	UpdatedAt          string            `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		EmployeeName:       a.EmployeeName,
		EmployeeEmail:      a.EmployeeEmail,
		Designation:        a.Designation,
		Department:         a.Department,
		Date:               a.Date.Format(validator.DateLayout),
		CheckInTime:        formatTime(a.CheckInTime),
		CheckOutTime:       formatTime(a.CheckOutTime),
		CheckInLocation:    toLocationResponse(a.CheckInLocation),
		CheckOutLocation:   toLocationResponse(a.CheckOutLocation),
		Status:             string(a.Status),
		IsVerified:         a.IsVerified,
		VerificationStatus: string(a.VerificationStatus),
		Method:             string(a.Method),
		Reason:             a.Reason,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toLocationResponse(l *Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{Latitude: l.Latitude, Longitude: l.Longitude}
}
