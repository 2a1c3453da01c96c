package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService           AuthService
	UserService           UserService
	TeacherService        TeacherService
	StudentService        StudentService
	SubjectService        SubjectService
	AvailabilityService   AvailabilityService
	ContactRequestService ContactRequestService
	ConversationService   ConversationService
	LessonService         LessonService
	ReviewService         ReviewService
}
