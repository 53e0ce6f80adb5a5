package service

import "strings"

// ChatService answers the public helper widget with canned keyword
// responses. It is stateless and never touches the database.
type ChatService struct{}

func NewChatService() *ChatService {
	return &ChatService{}
}

// chatDefault is returned when no keyword matches.
const chatDefault = "I'm here to help with dropout prevention and student support. Could you please provide more details about what you need help with?"

// Ordered: the first keyword found in the message wins.
var chatResponses = []struct {
	keyword string
	reply   string
}{
	{"hello", "Hello! How can I help you today?"},
	{"hi", "Hi there! What can I do for you?"},
	{"help", "I can help you with information about dropout prevention, student support, and educational resources. What would you like to know?"},
	{"dropout", "Dropout prevention is important. We offer various support programs and resources to help students stay in school. Would you like to know more about specific programs?"},
	{"support", "We provide academic support, counseling services, and mentorship programs. Which type of support are you interested in?"},
	{"resources", "We have various resources including tutoring, study materials, and counseling services. What specific resources are you looking for?"},
}

// Reply matches the message against the keyword table, case-insensitive,
// substring semantics.
func (s *ChatService) Reply(message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))
	for _, r := range chatResponses {
		if strings.Contains(normalized, r.keyword) {
			return r.reply
		}
	}
	return chatDefault
}
