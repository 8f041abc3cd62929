package messaging

import (
	"fmt"
	"time"
)

func seed(in *Inbox) {
	base := in.now().Add(-6 * time.Hour)
	type line struct {
		from Sender
		text string
		ago  time.Duration
	}
	convs := []struct {
		conv  Conversation
		lines []line
	}{
		{
			conv: Conversation{ID: "conv-1", Label: "Jennifer Lee", ContactName: "Jennifer Lee", ContactEmail: "jennifer.lee@example.com", Unit: "4B"},
			lines: []line{
				{SenderContact, "Hi, the kitchen sink has been leaking since this morning.", 0},
				{SenderStaff, "Sorry to hear that! Is water pooling on the floor?", 10 * time.Minute},
				{SenderContact, "A little, I put a towel down for now.", 15 * time.Minute},
			},
		},
		{
			conv: Conversation{ID: "conv-2", Label: "Marcus Brown", ContactName: "Marcus Brown", ContactEmail: "marcus.brown@example.com", Unit: "12A"},
			lines: []line{
				{SenderContact, "Can I book the roof deck for Saturday evening?", time.Hour},
			},
		},
		{
			conv: Conversation{ID: "conv-3", Label: "Priya Patel", ContactName: "Priya Patel", ContactEmail: "priya.patel@example.com", Unit: "7C"},
			lines: []line{
				{SenderContact, "My access fob stopped working at the garage gate.", 2 * time.Hour},
				{SenderStaff, "Thanks Priya, we'll look into it today.", 2*time.Hour + 5*time.Minute},
			},
		},
	}

	for _, c := range convs {
		conv := c.conv
		for i, l := range c.lines {
			at := base.Add(l.ago)
			in.messages[conv.ID] = append(in.messages[conv.ID], Message{
				ID:             fmt.Sprintf("%s-m%d", conv.ID, i+1),
				ConversationID: conv.ID,
				Sender:         l.from,
				Kind:           KindText,
				Content:        l.text,
				At:             at,
			})
			conv.LastMessage = l.text
			conv.LastMessageAt = at
			if l.from == SenderContact {
				conv.Unread++
			}
		}
		in.conversations = append(in.conversations, conv)
	}
}
