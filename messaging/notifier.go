package messaging

import (
	"errors"
	"fmt"
	"strings"

	"propdesk/models"
	"propdesk/utils"
)

// Notifier emails the people a new service request concerns, following the
// tenant's notification settings.
type Notifier struct {
	mailer    utils.Mailer
	directory []models.TeamMember
}

func NewNotifier(mailer utils.Mailer, directory []models.TeamMember) *Notifier {
	return &Notifier{mailer: mailer, directory: directory}
}

// ServiceRequestCreated notifies the requestor and the assignee of the
// matching service type. Every email is attempted; failures are joined.
func (n *Notifier) ServiceRequestCreated(data models.WizardData, conv Conversation, card ServiceRequestCard) error {
	settings := data.Notifications
	var errs []error

	if settings.NotifyRequestor && conv.ContactEmail != "" {
		err := n.mailer.Send(utils.EmailData{
			Subject:  fmt.Sprintf("We received your request %s", card.Ticket),
			To:       []string{conv.ContactEmail},
			Template: "service_request_created",
			Data: map[string]interface{}{
				"Subject":     fmt.Sprintf("We received your request %s", card.Ticket),
				"Ticket":      card.Ticket,
				"Type":        card.Type,
				"Location":    card.Location,
				"Description": card.Description,
				"Year":        utils.TemplateYear(),
			},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("notify requestor: %w", err))
		}
	}

	if settings.NotifyAssignedTeam {
		name, recipients := n.Recipients(data, card.Type)
		if len(recipients) > 0 {
			err := n.mailer.Send(utils.EmailData{
				Subject:  fmt.Sprintf("New service request %s", card.Ticket),
				To:       recipients,
				Template: "service_request_assigned",
				Data: map[string]interface{}{
					"Subject":     fmt.Sprintf("New service request %s", card.Ticket),
					"Team":        name,
					"Ticket":      card.Ticket,
					"Type":        card.Type,
					"Location":    card.Location,
					"Requestor":   conv.ContactName,
					"Description": card.Description,
					"Year":        utils.TemplateYear(),
				},
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("notify assignee: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}

// Recipients resolves who handles a request type: the members of the
// assigned team, or the assigned user. It returns the assignee name and
// their email addresses.
func (n *Notifier) Recipients(data models.WizardData, requestType string) (string, []string) {
	st, ok := findServiceType(data, requestType)
	if !ok || st.AssignedTo == "" {
		return "", nil
	}

	switch st.AssignedToType {
	case models.AssigneeTeam:
		team, ok := data.TeamByName(st.AssignedTo)
		if !ok {
			return st.AssignedTo, nil
		}
		var emails []string
		for _, m := range team.Members {
			if m.Email != "" {
				emails = append(emails, m.Email)
			}
		}
		return team.Name, emails
	case models.AssigneeUser:
		for _, m := range n.directory {
			if m.Name == st.AssignedTo && m.Email != "" {
				return m.Name, []string{m.Email}
			}
		}
	}
	return st.AssignedTo, nil
}

func findServiceType(data models.WizardData, requestType string) (models.ServiceType, bool) {
	slug := models.Slugify(requestType)
	for _, st := range data.ServiceTypes {
		if strings.EqualFold(st.RequestType, requestType) || st.Slug == slug {
			return st, true
		}
	}
	return models.ServiceType{}, false
}
