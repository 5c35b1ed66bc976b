package models

import (
	"fmt"
	"regexp"
	"time"
)

// Request lifecycle statuses. Any status is settable from any non-deleted
// state; the admin UI offers all three at all times.
const (
	RequestPending        = "Pending"
	RequestOutForDelivery = "Out for delivery"
	RequestCompleted      = "Completed"
)

// Urgency levels, from least to most urgent.
const (
	UrgencyLow      = "Low"
	UrgencyMedium   = "Medium"
	UrgencyHigh     = "High"
	UrgencyCritical = "Critical"
)

// MaxUnitsPerRequest caps a single request; larger demands go through
// the blood bank directly.
const MaxUnitsPerRequest = 20

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// BloodRequest is a single demand record from public intake.
type BloodRequest struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	PatientName   string    `bson:"patientName" json:"patientName"`
	BloodGroup    string    `bson:"bloodGroup" json:"bloodGroup"`
	Hospital      string    `bson:"hospital" json:"hospital"`
	UnitsRequired int       `bson:"unitsRequired" json:"unitsRequired"`
	Urgency       string    `bson:"urgency" json:"urgency"`
	Status        string    `bson:"status" json:"status"`
	ContactPerson string    `bson:"contactPerson" json:"contactPerson"`
	PhoneNumber   string    `bson:"phoneNumber" json:"phoneNumber"`
	Email         string    `bson:"email" json:"email"`
	Address       string    `bson:"address" json:"address"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsValidRequestStatus reports whether s is one of the three lifecycle
// statuses.
func IsValidRequestStatus(s string) bool {
	return s == RequestPending || s == RequestOutForDelivery || s == RequestCompleted
}

// IsValidUrgency reports whether u is a known urgency level.
func IsValidUrgency(u string) bool {
	return UrgencyWeight(u) > 0
}

// UrgencyWeight maps an urgency level to its triage sort weight. Unknown
// levels weigh zero and sort last.
func UrgencyWeight(u string) int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every intake constraint and returns the first failure.
// Urgency must already be defaulted by the caller; an empty urgency is
// rejected here.
func (r *BloodRequest) Validate() error {
	if n := len(r.PatientName); n < 2 || n > 100 {
		return &ValidationError{Field: "patientName", Message: "patient name must be 2-100 characters"}
	}
	if !IsValidBloodGroup(r.BloodGroup) {
		return &ValidationError{Field: "bloodGroup", Message: fmt.Sprintf("%q is not a valid blood group", r.BloodGroup)}
	}
	if n := len(r.Hospital); n < 3 || n > 150 {
		return &ValidationError{Field: "hospital", Message: "hospital name must be 3-150 characters"}
	}
	if r.UnitsRequired < 1 || r.UnitsRequired > MaxUnitsPerRequest {
		return &ValidationError{Field: "unitsRequired", Message: fmt.Sprintf("units required must be between 1 and %d", MaxUnitsPerRequest)}
	}
	if !IsValidUrgency(r.Urgency) {
		return &ValidationError{Field: "urgency", Message: fmt.Sprintf("%q is not a valid urgency level", r.Urgency)}
	}
	if n := len(r.ContactPerson); n < 2 || n > 100 {
		return &ValidationError{Field: "contactPerson", Message: "contact person must be 2-100 characters"}
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return &ValidationError{Field: "phoneNumber", Message: "phone number must be exactly 10 digits"}
	}
	if !emailPattern.MatchString(r.Email) {
		return &ValidationError{Field: "email", Message: "email address is not valid"}
	}
	if r.Address == "" {
		return &ValidationError{Field: "address", Message: "address is required"}
	}
	return nil
}
