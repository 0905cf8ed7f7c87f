package models

// Registration is one submitted event-participation record.
//
// Timestamp is nanoseconds since the Unix epoch. Divide by 1_000_000
// before handing it to millisecond-based date APIs.
type Registration struct {
	ID           int64  `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	CollegeName  string `json:"collegeName"`
	Department   string `json:"department"`
	ProjectTitle string `json:"projectTitle"`
	Category     string `json:"category"`
	Abstract     string `json:"abstract"`
	Timestamp    int64  `json:"timestamp"`
}

// RegistrationFields is the body of POST /api/registrations and
// PUT /api/admin/registrations/{id}. Every field is required.
type RegistrationFields struct {
	FullName     string `json:"fullName"     validate:"required,notblank"`
	Email        string `json:"email"        validate:"required,notblank"`
	PhoneNumber  string `json:"phoneNumber"  validate:"required,notblank"`
	CollegeName  string `json:"collegeName"  validate:"required,notblank"`
	Department   string `json:"department"   validate:"required,notblank"`
	ProjectTitle string `json:"projectTitle" validate:"required,notblank"`
	Category     string `json:"category"     validate:"required,notblank"`
	Abstract     string `json:"abstract"     validate:"required,notblank"`
}

// Fields strips the store-assigned id and timestamp.
func (r Registration) Fields() RegistrationFields {
	return RegistrationFields{
		FullName:     r.FullName,
		Email:        r.Email,
		PhoneNumber:  r.PhoneNumber,
		CollegeName:  r.CollegeName,
		Department:   r.Department,
		ProjectTitle: r.ProjectTitle,
		Category:     r.Category,
		Abstract:     r.Abstract,
	}
}

// CategoryCount is one row of the per-category dashboard tally.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
