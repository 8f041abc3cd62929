// Package assistant answers setup questions in a chat session.
package assistant

import "strings"

// Entry is one canned answer and the keywords that select it.
type Entry struct {
	Keywords []string
	Answer   string
}

// KnowledgeBase is an ordered Q&A table. Earlier entries win.
type KnowledgeBase []Entry

// FallbackReply is sent when nothing else can answer.
const FallbackReply = "I'm not sure about that one yet. Try asking about teams, categories, service types, statuses, form fields or notifications, or contact your account manager."

// DefaultKnowledgeBase covers the setup wizard and the messaging panel.
var DefaultKnowledgeBase = KnowledgeBase{
	{
		Keywords: []string{"property team", "delete team", "remove team"},
		Answer:   "The Property Team is built in and cannot be deleted. Any other team can be removed from the Teams step.",
	},
	{
		Keywords: []string{"team", "member"},
		Answer:   "On the Teams step, add a team with a name and description, then click Edit to search the staff directory by name, email or role and add members.",
	},
	{
		Keywords: []string{"approval", "approver", "approve"},
		Answer:   "Turn on Requires approval for a service type and pick an approver. If the category has other service types, you will be asked whether to apply the same approval to all of them.",
	},
	{
		Keywords: []string{"service type", "request type"},
		Answer:   "Service types are grouped under their category. Only enabled categories are shown, and you can switch a whole category's service types on or off at once.",
	},
	{
		Keywords: []string{"category", "categories"},
		Answer:   "Categories group your service types. Enable the ones you offer; disabling a category hides its service types without deleting them.",
	},
	{
		Keywords: []string{"status", "statuses", "workflow"},
		Answer:   "Statuses are the stages a request moves through, such as New, In Progress and Completed. Use Enable All or Disable All to change them in bulk.",
	},
	{
		Keywords: []string{"form", "field", "dropdown"},
		Answer:   "Location, Description and Attachments are core fields and cannot be deleted. Add custom fields for anything else; dropdown fields need at least one option.",
	},
	{
		Keywords: []string{"notification", "notify", "email"},
		Answer:   "The Notifications step controls whether the requestor and the assigned team are emailed, and whether status changes send updates.",
	},
	{
		Keywords: []string{"ticket", "service request", "work order"},
		Answer:   "From a conversation in Messages, choose Create service request. A ticket number like SR-12345 is generated and the conversation is renamed to it.",
	},
	{
		Keywords: []string{"price", "pricing", "cost"},
		Answer:   "A service type can have a fixed price, a price range or be quoted on request.",
	},
}

// Suggestions are the starter questions shown in an empty chat.
var Suggestions = []string{
	"How do I add members to a team?",
	"What does requires approval do?",
	"Can I delete the Property Team?",
	"Which form fields are required?",
	"How do I create a service request ticket?",
}

// Lookup returns the answer of the first entry with a keyword contained in
// question, ignoring case.
func (kb KnowledgeBase) Lookup(question string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return "", false
	}
	for _, e := range kb {
		for _, kw := range e.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				return e.Answer, true
			}
		}
	}
	return "", false
}
