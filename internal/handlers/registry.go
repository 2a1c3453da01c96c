package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	TeacherHandler      *TeacherHandler
	StudentHandler      *StudentHandler
	SubjectHandler      *SubjectHandler
	AvailabilityHandler *AvailabilityHandler
	RequestHandler      *RequestHandler
	ConversationHandler *ConversationHandler
	LessonHandler       *LessonHandler
	ReviewHandler       *ReviewHandler
}
