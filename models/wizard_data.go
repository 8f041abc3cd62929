package models

// WizardData is the full service-request configuration of one tenant. It is
// the unit of persistence.
type WizardData struct {
	Teams         []Team               `json:"teams"`
	Categories    []Category           `json:"categories"`
	ServiceTypes  []ServiceType        `json:"service_types"`
	Statuses      []Status             `json:"statuses"`
	FormFields    []FormField          `json:"form_fields"`
	Notifications NotificationSettings `json:"notifications"`
}

// Patch replaces whole sections of WizardData. A nil field leaves its
// section untouched.
type Patch struct {
	Teams         *[]Team               `json:"teams,omitempty"`
	Categories    *[]Category           `json:"categories,omitempty"`
	ServiceTypes  *[]ServiceType        `json:"service_types,omitempty"`
	Statuses      *[]Status             `json:"statuses,omitempty"`
	FormFields    *[]FormField          `json:"form_fields,omitempty"`
	Notifications *NotificationSettings `json:"notifications,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Teams == nil && p.Categories == nil && p.ServiceTypes == nil &&
		p.Statuses == nil && p.FormFields == nil && p.Notifications == nil
}

// Apply returns a copy of d with the sections present in p replaced.
func (d WizardData) Apply(p Patch) WizardData {
	out := d
	if p.Teams != nil {
		out.Teams = cloneTeams(*p.Teams)
	}
	if p.Categories != nil {
		out.Categories = append([]Category{}, (*p.Categories)...)
	}
	if p.ServiceTypes != nil {
		out.ServiceTypes = cloneServiceTypes(*p.ServiceTypes)
	}
	if p.Statuses != nil {
		out.Statuses = cloneStatuses(*p.Statuses)
	}
	if p.FormFields != nil {
		out.FormFields = cloneFormFields(*p.FormFields)
	}
	if p.Notifications != nil {
		out.Notifications = *p.Notifications
	}
	return out
}

// Clone returns a deep copy that shares no memory with d.
func (d WizardData) Clone() WizardData {
	return WizardData{
		Teams:         cloneTeams(d.Teams),
		Categories:    append([]Category{}, d.Categories...),
		ServiceTypes:  cloneServiceTypes(d.ServiceTypes),
		Statuses:      cloneStatuses(d.Statuses),
		FormFields:    cloneFormFields(d.FormFields),
		Notifications: d.Notifications,
	}
}

func (d WizardData) Category(id int) (Category, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryOf resolves the category a service type points at. ok is false
// for orphaned service types.
func (d WizardData) CategoryOf(st ServiceType) (Category, bool) {
	return d.Category(st.CategoryID)
}

func (d WizardData) TeamByName(name string) (Team, bool) {
	for _, t := range d.Teams {
		if t.Name == name || t.Slug == Slugify(name) {
			return t, true
		}
	}
	return Team{}, false
}

func cloneTeams(in []Team) []Team {
	out := make([]Team, len(in))
	for i, t := range in {
		out[i] = t.clone()
	}
	return out
}

func cloneServiceTypes(in []ServiceType) []ServiceType {
	out := make([]ServiceType, len(in))
	for i, st := range in {
		out[i] = st.clone()
	}
	return out
}

func cloneStatuses(in []Status) []Status {
	out := make([]Status, len(in))
	for i, s := range in {
		if s.OrderCount != nil {
			n := *s.OrderCount
			s.OrderCount = &n
		}
		out[i] = s
	}
	return out
}

func cloneFormFields(in []FormField) []FormField {
	out := make([]FormField, len(in))
	for i, f := range in {
		out[i] = f.clone()
	}
	return out
}
