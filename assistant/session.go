package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"propdesk/utils"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is one chat with the assistant. Replies arrive after a delay on
// a goroutine bound to the session; closing the session cancels every
// reply still pending.
type Session struct {
	ID       string
	TenantID string

	responder Responder
	delay     time.Duration
	log       *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	messages []Message
	subs     map[int]chan Message
	nextSub  int
	lastSeen time.Time
	closed   bool
}

func NewSession(parent context.Context, id, tenantID string, responder Responder, delay time.Duration) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ID:        id,
		TenantID:  tenantID,
		responder: responder,
		delay:     delay,
		log:       utils.Component("ASSISTANT").WithField("session_id", id),
		ctx:       ctx,
		cancel:    cancel,
		messages:  []Message{},
		subs:      make(map[int]chan Message),
		lastSeen:  time.Now(),
	}
}

func (s *Session) Tenant() string { return s.TenantID }

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Messages returns the conversation so far.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message{}, s.messages...)
}

// Submit records the user's message right away and schedules the reply.
func (s *Session) Submit(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, utils.ErrEmptyMessage
	}

	msg := Message{ID: uuid.NewString(), Role: RoleUser, Content: text, At: time.Now()}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Message{}, utils.ErrSessionClosed
	}
	s.messages = append(s.messages, msg)
	s.lastSeen = msg.At
	s.wg.Add(1)
	s.broadcastLocked(msg)
	s.mu.Unlock()

	go s.reply(text)
	return msg, nil
}

func (s *Session) reply(question string) {
	defer s.wg.Done()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-s.ctx.Done():
		return
	case <-timer.C:
	}

	answer, ok, err := s.responder.Reply(s.ctx, question)
	if s.ctx.Err() != nil {
		return
	}
	if err != nil {
		s.log.WithError(err).Warn("Responder failed, sending fallback")
	}
	if !ok {
		answer = FallbackReply
	}

	msg := Message{ID: uuid.NewString(), Role: RoleAssistant, Content: answer, At: time.Now()}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.messages = append(s.messages, msg)
	s.broadcastLocked(msg)
}

// Subscribe streams every new message. The channel is closed when the
// session closes or the returned cancel func is called.
func (s *Session) Subscribe() (<-chan Message, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Message, 16)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// broadcastLocked drops the message for subscribers that are not keeping up.
func (s *Session) broadcastLocked(msg Message) {
	for _, ch := range s.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Wait blocks until every scheduled reply has been delivered or cancelled.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels pending replies and waits for them to stop. No message is
// added after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()
}
