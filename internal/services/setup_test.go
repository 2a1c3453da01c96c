package services_test

import (
	"sync"
	"time"

	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services"
)

type notification struct {
	Event          string
	Payload        interface{}
	UserIDs        []uint
	ConversationID uint
}

// recordingNotifier keeps every outbound event for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) NotifyUsers(event string, payload interface{}, userIDs ...uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{Event: event, Payload: payload, UserIDs: userIDs})
}

func (n *recordingNotifier) NotifyConversation(conversationID uint, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{Event: event, Payload: payload, ConversationID: conversationID})
}

func (n *recordingNotifier) byEvent(event string) []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification
	for _, e := range n.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func newContainer(notifier services.Notifier) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	subjectRepo := repositories.NewSubjectRepository()
	requestRepo := repositories.NewContactRequestRepository()
	conversationRepo := repositories.NewConversationRepository()
	reviewRepo := repositories.NewReviewRepository()

	return &services.ServiceContainer{
		AuthService:           services.NewAuthService(userRepo, profileRepo, auth.NewTokenManager("services_test_secret", time.Hour)),
		UserService:           services.NewUserService(userRepo, reviewRepo, profileRepo),
		TeacherService:        services.NewTeacherService(userRepo, profileRepo, subjectRepo),
		StudentService:        services.NewStudentService(userRepo, profileRepo),
		SubjectService:        services.NewSubjectService(subjectRepo),
		AvailabilityService:   services.NewAvailabilityService(repositories.NewAvailabilityRepository(), userRepo),
		ContactRequestService: services.NewContactRequestService(requestRepo, conversationRepo, userRepo, notifier),
		ConversationService:   services.NewConversationService(conversationRepo, requestRepo, userRepo, notifier),
		LessonService:         services.NewLessonService(repositories.NewLessonRepository(), userRepo, subjectRepo),
		ReviewService:         services.NewReviewService(reviewRepo, userRepo, profileRepo),
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
