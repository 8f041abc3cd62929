// Package messaging is the tenant-communications inbox: conversations with
// residents and the service requests filed from them.
package messaging

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"propdesk/utils"
)

type Conversation struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	ContactName   string    `json:"contact_name"`
	ContactEmail  string    `json:"contact_email"`
	Unit          string    `json:"unit"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	Unread        int       `json:"unread"`
}

type MessageKind string

const (
	KindText           MessageKind = "text"
	KindServiceRequest MessageKind = "service_request"
)

type Sender string

const (
	SenderContact Sender = "contact"
	SenderStaff   Sender = "staff"
)

// ServiceRequestCard is the confirmation posted when a request is filed
// from a conversation.
type ServiceRequestCard struct {
	Ticket      string    `json:"ticket"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Message struct {
	ID             string              `json:"id"`
	ConversationID string              `json:"conversation_id"`
	Sender         Sender              `json:"sender"`
	Kind           MessageKind         `json:"kind"`
	Content        string              `json:"content"`
	Card           *ServiceRequestCard `json:"card,omitempty"`
	At             time.Time           `json:"at"`
}

type ServiceRequestInput struct {
	Type        string `json:"type" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=2000"`
	Location    string `json:"location" validate:"required,max=200"`
}

// Inbox holds one tenant's conversations in memory.
type Inbox struct {
	mu            sync.RWMutex
	conversations []Conversation
	messages      map[string][]Message
	now           func() time.Time
}

func NewInbox() *Inbox {
	return &Inbox{
		conversations: []Conversation{},
		messages:      make(map[string][]Message),
		now:           time.Now,
	}
}

// NewSeededInbox returns an inbox holding the sample conversations.
func NewSeededInbox() *Inbox {
	in := NewInbox()
	seed(in)
	return in
}

func (in *Inbox) Conversations() []Conversation {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return append([]Conversation{}, in.conversations...)
}

func (in *Inbox) Conversation(id string) (Conversation, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	idx := in.indexLocked(id)
	if idx < 0 {
		return Conversation{}, utils.ErrConversationNotFound
	}
	return in.conversations[idx], nil
}

// Messages returns a conversation's messages and marks it read.
func (in *Inbox) Messages(conversationID string) ([]Message, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	idx := in.indexLocked(conversationID)
	if idx < 0 {
		return nil, utils.ErrConversationNotFound
	}
	in.conversations[idx].Unread = 0
	return append([]Message{}, in.messages[conversationID]...), nil
}

// Send posts a staff message and updates the conversation preview.
func (in *Inbox) Send(conversationID, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, utils.ErrEmptyMessage
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	idx := in.indexLocked(conversationID)
	if idx < 0 {
		return Message{}, utils.ErrConversationNotFound
	}

	msg := Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender:         SenderStaff,
		Kind:           KindText,
		Content:        text,
		At:             in.now(),
	}
	in.appendLocked(idx, msg, text)
	return msg, nil
}

// CreateServiceRequest files a request from a conversation. It posts a
// confirmation card and renames the conversation to the ticket number.
// There is no undo.
func (in *Inbox) CreateServiceRequest(conversationID string, req ServiceRequestInput) (Message, Conversation, error) {
	req.Type = strings.TrimSpace(req.Type)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	if req.Type == "" || req.Description == "" || req.Location == "" {
		return Message{}, Conversation{}, fmt.Errorf("%w: type, description and location are required", utils.ErrInvalidInput)
	}

	ticket, err := GenerateTicketNumber()
	if err != nil {
		return Message{}, Conversation{}, err
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	idx := in.indexLocked(conversationID)
	if idx < 0 {
		return Message{}, Conversation{}, utils.ErrConversationNotFound
	}

	now := in.now()
	card := &ServiceRequestCard{
		Ticket:      ticket,
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
		Status:      "New",
		CreatedAt:   now,
	}
	msg := Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender:         SenderStaff,
		Kind:           KindServiceRequest,
		Content:        fmt.Sprintf("Service request %s created: %s", ticket, req.Type),
		Card:           card,
		At:             now,
	}
	in.appendLocked(idx, msg, msg.Content)
	in.conversations[idx].Label = ticket
	return msg, in.conversations[idx], nil
}

func (in *Inbox) appendLocked(idx int, msg Message, preview string) {
	id := in.conversations[idx].ID
	in.messages[id] = append(in.messages[id], msg)
	in.conversations[idx].LastMessage = preview
	in.conversations[idx].LastMessageAt = msg.At
}

func (in *Inbox) indexLocked(id string) int {
	for i, c := range in.conversations {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// GenerateTicketNumber returns a ticket like SR-04217.
func GenerateTicketNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("generate ticket number: %w", err)
	}
	return fmt.Sprintf("SR-%05d", n.Int64()), nil
}

// Registry hands out one seeded inbox per tenant.
type Registry struct {
	mu      sync.Mutex
	inboxes map[string]*Inbox
}

func NewRegistry() *Registry {
	return &Registry{inboxes: make(map[string]*Inbox)}
}

func (r *Registry) For(tenantID string) *Inbox {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.inboxes[tenantID]
	if !ok {
		in = NewSeededInbox()
		r.inboxes[tenantID] = in
	}
	return in
}
