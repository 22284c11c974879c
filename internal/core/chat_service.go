package core

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/postpilot/studio/internal/backend"
)

// Greeting opens every new transcript before the user has said anything.
const Greeting = "Hi! Ask me anything about your brand, content ideas, or campaigns."

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatService keeps one transcript per session. Transcripts live in memory
// only; dropping a session discards the conversation, matching a page
// navigating away.
type ChatService struct {
	backend *backend.Client

	mu       sync.Mutex
	sessions map[string][]backend.ChatTurn
}

func NewChatService(b *backend.Client) *ChatService {
	return &ChatService{
		backend:  b,
		sessions: make(map[string][]backend.ChatTurn),
	}
}

// StartSession creates a transcript seeded with the fixed greeting.
func (s *ChatService) StartSession() (string, []backend.ChatTurn) {
	id := uuid.NewString()
	transcript := []backend.ChatTurn{{Role: RoleAssistant, Content: Greeting}}

	s.mu.Lock()
	s.sessions[id] = transcript
	s.mu.Unlock()

	return id, transcript
}

func (s *ChatService) Transcript(id string) ([]backend.ChatTurn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	transcript, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	out := make([]backend.ChatTurn, len(transcript))
	copy(out, transcript)
	return out, true
}

// Send forwards a user message with the conversation so far and appends both
// the user turn and the assistant reply on success. A failed exchange leaves
// the transcript untouched.
func (s *ChatService) Send(ctx context.Context, id, message string) ([]backend.ChatTurn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.New("Please type a message before sending.")
	}

	history, ok := s.Transcript(id)
	if !ok {
		return nil, errors.New("This conversation has expired. Reload the page to start a new one.")
	}

	resp, err := s.backend.Chat(ctx, backend.ChatRequest{
		Message:             message,
		ConversationHistory: history,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	transcript, ok := s.sessions[id]
	if !ok {
		return nil, errors.New("This conversation has expired. Reload the page to start a new one.")
	}
	transcript = append(transcript,
		backend.ChatTurn{Role: RoleUser, Content: message},
		backend.ChatTurn{Role: RoleAssistant, Content: resp.Message},
	)
	s.sessions[id] = transcript

	out := make([]backend.ChatTurn, len(transcript))
	copy(out, transcript)
	return out, nil
}

// EndSession discards a transcript.
func (s *ChatService) EndSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
