package services

// Server-originated real-time events.
const (
	EventContactRequestCreated       = "contactRequest:created"
	EventContactRequestStatusUpdated = "contactRequest:statusUpdated"
	EventMessageNew                  = "message:new"
)

// Notifier is the outbound real-time channel. Services call it after their
// transaction commits; delivery is best effort and never fails the operation.
type Notifier interface {
	// NotifyUsers pushes an event to every connection of each user.
	NotifyUsers(event string, payload interface{}, userIDs ...uint)
	// NotifyConversation pushes an event to every connection that joined the conversation.
	NotifyConversation(conversationID uint, event string, payload interface{})
}

// NopNotifier drops every event. Used when the gateway is disabled.
type NopNotifier struct{}

func (NopNotifier) NotifyUsers(string, interface{}, ...uint)     {}
func (NopNotifier) NotifyConversation(uint, string, interface{}) {}
