package models

type UserRole string
type ContactRequestStatus string
type LessonStatus string
type StudentLevel string

const (
	UserRoleStudent UserRole = "STUDENT"
	UserRoleTeacher UserRole = "TEACHER"
	UserRoleAdmin   UserRole = "ADMIN"

	ContactRequestStatusPending  ContactRequestStatus = "PENDING"
	ContactRequestStatusAccepted ContactRequestStatus = "ACCEPTED"
	ContactRequestStatusRejected ContactRequestStatus = "REJECTED"

	LessonStatusPending   LessonStatus = "PENDING"
	LessonStatusConfirmed LessonStatus = "CONFIRMED"
	LessonStatusCancelled LessonStatus = "CANCELLED"

	StudentLevelMiddleSchool StudentLevel = "MIDDLE_SCHOOL"
	StudentLevelHighSchool   StudentLevel = "HIGH_SCHOOL"
	StudentLevelUniversity   StudentLevel = "UNIVERSITY"
	StudentLevelOther        StudentLevel = "OTHER"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleStudent, UserRoleTeacher, UserRoleAdmin:
		return true
	}
	return false
}

func (s ContactRequestStatus) IsValid() bool {
	switch s {
	case ContactRequestStatusPending, ContactRequestStatusAccepted, ContactRequestStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s ContactRequestStatus) IsTerminal() bool {
	return s == ContactRequestStatusAccepted || s == ContactRequestStatusRejected
}

func (s LessonStatus) IsValid() bool {
	switch s {
	case LessonStatusPending, LessonStatusConfirmed, LessonStatusCancelled:
		return true
	}
	return false
}

func (l StudentLevel) IsValid() bool {
	switch l {
	case StudentLevelMiddleSchool, StudentLevelHighSchool, StudentLevelUniversity, StudentLevelOther:
		return true
	}
	return false
}
