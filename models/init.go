package models

import "github.com/shopspring/decimal"

// Defaults used when a tenant has no stored configuration, or when a stored
// section cannot be read.

func DefaultDirectory() []TeamMember {
	return []TeamMember{
		{ID: "u-1001", Name: "Sarah Johnson", Role: "Property Manager", Initials: "SJ", Email: "sarah.johnson@propdesk.io"},
		{ID: "u-1002", Name: "Michael Chen", Role: "Assistant Manager", Initials: "MC", Email: "michael.chen@propdesk.io"},
		{ID: "u-1003", Name: "Emily Rodriguez", Role: "Leasing Agent", Initials: "ER", Email: "emily.rodriguez@propdesk.io"},
		{ID: "u-1004", Name: "David Kim", Role: "Maintenance Supervisor", Initials: "DK", Email: "david.kim@propdesk.io"},
		{ID: "u-1005", Name: "James Wilson", Role: "Maintenance Technician", Initials: "JW", Email: "james.wilson@propdesk.io"},
		{ID: "u-1006", Name: "Maria Garcia", Role: "Housekeeping Lead", Initials: "MG", Email: "maria.garcia@propdesk.io"},
		{ID: "u-1007", Name: "Robert Taylor", Role: "Security Officer", Initials: "RT", Email: "robert.taylor@propdesk.io"},
		{ID: "u-1008", Name: "Lisa Anderson", Role: "Concierge", Initials: "LA", Email: "lisa.anderson@propdesk.io"},
	}
}

func DefaultTeams() []Team {
	dir := DefaultDirectory()
	return []Team{
		{
			ID:          PropertyTeamID,
			Slug:        PropertyTeamID,
			Name:        "Property Team",
			Description: "On-site management staff. Receives every request that is not routed elsewhere.",
			Members:     []TeamMember{dir[0], dir[1]},
		},
		{
			ID:          "maintenance-team",
			Slug:        "maintenance-team",
			Name:        "Maintenance Team",
			Description: "Repairs, preventive maintenance and work orders.",
			Members:     []TeamMember{dir[3], dir[4]},
		},
	}
}

func DefaultCategories() []Category {
	team := func(name string) Assignee { return Assignee{AssignedTo: name, AssignedToType: AssigneeTeam} }
	user := func(name string) Assignee { return Assignee{AssignedTo: name, AssignedToType: AssigneeUser} }
	return []Category{
		{ID: 1, Name: "Maintenance", Description: "Repairs and upkeep inside units and common areas", Status: true, Assignee: team("Maintenance Team")},
		{ID: 2, Name: "Cleaning", Description: "Housekeeping and cleaning services", Status: true, Assignee: user("Maria Garcia")},
		{ID: 3, Name: "Security", Description: "Access, keys and safety concerns", Status: true, Assignee: user("Robert Taylor")},
		{ID: 4, Name: "Amenities", Description: "Bookings and issues with shared amenities", Status: true, Assignee: team("Property Team")},
		{ID: 5, Name: "Parking", Description: "Permits, guest parking and towing", Status: false, Assignee: team("Property Team")},
		{ID: 6, Name: "Moving & Deliveries", Description: "Move-ins, move-outs and package handling", Status: true, Assignee: user("Lisa Anderson")},
		{ID: 7, Name: "Administrative", Description: "Lease, billing and account questions", Status: false, Assignee: user("Sarah Johnson")},
	}
}

func defaultServiceTypeStatuses() []ServiceTypeStatus {
	return []ServiceTypeStatus{
		{Name: "New", NotifyRequestor: true, NotifyAssignee: true},
		{Name: "In Progress", NotifyRequestor: true, NotifyAssignee: false},
		{Name: "Completed", NotifyRequestor: true, NotifyAssignee: true},
	}
}

func DefaultServiceTypes() []ServiceType {
	maintenance := Assignee{AssignedTo: "Maintenance Team", AssignedToType: AssigneeTeam}
	property := Assignee{AssignedTo: "Property Team", AssignedToType: AssigneeTeam}
	manager := Assignee{AssignedTo: DefaultApprover, AssignedToType: AssigneeUser}
	price := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}

	types := []ServiceType{
		{ID: 1, RequestType: "Plumbing", Description: "Leaks, clogs and water pressure", CategoryID: 1, Approval: NoApproval(), Assignee: maintenance, Status: true},
		{ID: 2, RequestType: "Electrical", Description: "Outlets, lighting and breakers", CategoryID: 1, Approval: RequireApproval(manager), Assignee: maintenance, Status: true},
		{ID: 3, RequestType: "HVAC", Description: "Heating, ventilation and air conditioning", CategoryID: 1, Approval: NoApproval(), Assignee: maintenance, Status: true},
		{ID: 4, RequestType: "Appliance Repair", Description: "Fridge, oven, washer and dryer", CategoryID: 1, Approval: NoApproval(), Assignee: maintenance, Status: false},
		{ID: 5, RequestType: "Common Area Cleaning", Description: "Hallways, lobby and stairwells", CategoryID: 2, Approval: NoApproval(), Assignee: Assignee{AssignedTo: "Maria Garcia", AssignedToType: AssigneeUser}, Status: true},
		{ID: 6, RequestType: "Carpet Cleaning", Description: "In-unit carpet shampoo", CategoryID: 2, Approval: NoApproval(), Assignee: Assignee{AssignedTo: "Maria Garcia", AssignedToType: AssigneeUser}, PriceType: PriceRange, PriceMin: price(75), PriceMax: price(150), Status: true},
		{ID: 7, RequestType: "Key Replacement", Description: "Lost or broken unit keys", CategoryID: 3, Approval: NoApproval(), Assignee: Assignee{AssignedTo: "Robert Taylor", AssignedToType: AssigneeUser}, PriceType: PriceFixed, PriceFixed: price(25), Status: true},
		{ID: 8, RequestType: "Access Card", Description: "New or replacement fob", CategoryID: 3, Approval: RequireApproval(manager), Assignee: Assignee{AssignedTo: "Robert Taylor", AssignedToType: AssigneeUser}, Status: true},
		{ID: 9, RequestType: "Amenity Booking", Description: "Reserve the party room, gym or roof deck", CategoryID: 4, Approval: NoApproval(), Assignee: property, Status: true},
		{ID: 10, RequestType: "Guest Parking Permit", Description: "Temporary visitor permit", CategoryID: 5, Approval: NoApproval(), Assignee: property, Status: true},
		{ID: 11, RequestType: "Move-In / Move-Out", Description: "Elevator booking and move coordination", CategoryID: 6, Approval: RequireApproval(manager), Assignee: Assignee{AssignedTo: "Lisa Anderson", AssignedToType: AssigneeUser}, Status: true},
		{ID: 12, RequestType: "Package Pickup", Description: "Collect held packages", CategoryID: 6, Approval: NoApproval(), Assignee: Assignee{AssignedTo: "Lisa Anderson", AssignedToType: AssigneeUser}, Status: true},
		{ID: 13, RequestType: "Lease Inquiry", Description: "Questions about lease terms and renewals", CategoryID: 7, Approval: NoApproval(), Assignee: Assignee{AssignedTo: "Sarah Johnson", AssignedToType: AssigneeUser}, PriceType: PriceQuote, Status: true},
	}
	for i := range types {
		types[i].Slug = Slugify(types[i].RequestType)
		types[i].Statuses = defaultServiceTypeStatuses()
	}
	return types
}

func DefaultStatuses() []Status {
	return []Status{
		{ID: 1, Name: "New", Description: "Request received and awaiting triage", Status: true, Color: "blue"},
		{ID: 2, Name: "Assigned", Description: "Routed to a team or user", Status: true, Color: "indigo"},
		{ID: 3, Name: "In Progress", Description: "Work has started", Status: true, Color: "yellow"},
		{ID: 4, Name: "On Hold", Description: "Waiting on parts, access or the resident", Status: true, Color: "orange"},
		{ID: 5, Name: "Pending Approval", Description: "Waiting for an approver", Status: true, Color: "purple"},
		{ID: 6, Name: "Completed", Description: "Work is done", Status: true, Color: "green"},
		{ID: 7, Name: "Cancelled", Description: "Request withdrawn or rejected", Status: false, Color: "red"},
		{ID: 8, Name: "Closed", Description: "Completed and confirmed by the resident", Status: false, Color: "gray"},
	}
}

func DefaultFormFields() []FormField {
	all := func() []string { return []string{AllServiceTypes} }
	return []FormField{
		{ID: FieldLocation, Slug: FieldLocation, Name: "Location", Description: "Where in the unit or building the issue is", Type: FieldText, Requirement: RequirementRequired, ServiceTypes: all(), IsCore: true, Options: []string{}},
		{ID: FieldDescription, Slug: FieldDescription, Name: "Description", Description: "What needs to be done", Type: FieldTextarea, Requirement: RequirementRequired, ServiceTypes: all(), IsCore: true, Options: []string{}},
		{ID: FieldAttachments, Slug: FieldAttachments, Name: "Attachments", Description: "Photos or documents", Type: FieldFile, Requirement: RequirementOptional, ServiceTypes: all(), IsCore: true, Options: []string{}},
		{ID: "preferred-time", Slug: "preferred-time", Name: "Preferred Time", Description: "When the resident would like the visit", Type: FieldDropdown, Requirement: RequirementOptional, ServiceTypes: all(), Options: []string{"Morning", "Afternoon", "Evening"}},
		{ID: "permission-to-enter", Slug: "permission-to-enter", Name: "Permission to Enter", Description: "Staff may enter when nobody is home", Type: FieldCheckbox, Requirement: RequirementOptional, ServiceTypes: []string{"plumbing", "electrical", "hvac", "appliance-repair"}, Options: []string{}},
		{ID: "pets-in-unit", Slug: "pets-in-unit", Name: "Pets in Unit", Description: "Let staff know about animals", Type: FieldCheckbox, Requirement: RequirementDisabled, ServiceTypes: all(), Options: []string{}},
	}
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		NotifyRequestor:       true,
		NotifyAssignedTeam:    true,
		NotifyOnStatusChanges: false,
	}
}

func DefaultWizardData() WizardData {
	return WizardData{
		Teams:         DefaultTeams(),
		Categories:    DefaultCategories(),
		ServiceTypes:  DefaultServiceTypes(),
		Statuses:      DefaultStatuses(),
		FormFields:    DefaultFormFields(),
		Notifications: DefaultNotificationSettings(),
	}
}
