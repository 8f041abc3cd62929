package steps

import (
	"propdesk/models"
	"propdesk/store"
	"propdesk/utils"
)

// Palette is the badge styling of one status color.
type Palette struct {
	Color      string `json:"color"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

var palettes = map[string]Palette{
	"blue":   {Color: "blue", Background: "#dbeafe", Text: "#1e40af", Border: "#93c5fd"},
	"green":  {Color: "green", Background: "#dcfce7", Text: "#166534", Border: "#86efac"},
	"yellow": {Color: "yellow", Background: "#fef9c3", Text: "#854d0e", Border: "#fde047"},
	"orange": {Color: "orange", Background: "#ffedd5", Text: "#9a3412", Border: "#fdba74"},
	"red":    {Color: "red", Background: "#fee2e2", Text: "#991b1b", Border: "#fca5a5"},
	"purple": {Color: "purple", Background: "#f3e8ff", Text: "#6b21a8", Border: "#d8b4fe"},
	"gray":   {Color: "gray", Background: "#f3f4f6", Text: "#1f2937", Border: "#d1d5db"},
	"pink":   {Color: "pink", Background: "#fce7f3", Text: "#9d174d", Border: "#f9a8d4"},
	"indigo": {Color: "indigo", Background: "#e0e7ff", Text: "#3730a3", Border: "#a5b4fc"},
	"teal":   {Color: "teal", Background: "#ccfbf1", Text: "#115e59", Border: "#5eead4"},
}

// PaletteFor returns the palette of a color name. Unknown colors get blue.
func PaletteFor(color string) Palette {
	if p, ok := palettes[color]; ok {
		return p
	}
	return palettes["blue"]
}

// StatusesStep is step 4.
type StatusesStep struct {
	store *store.Store
}

func NewStatusesStep(st *store.Store) *StatusesStep {
	return &StatusesStep{store: st}
}

func (s *StatusesStep) Number() int   { return 4 }
func (s *StatusesStep) Title() string { return "Statuses" }

func (s *StatusesStep) Validate(data models.WizardData) []string {
	for _, st := range data.Statuses {
		if st.Status {
			return nil
		}
	}
	return []string{"enable at least one status"}
}

func (s *StatusesStep) List() []models.Status {
	return s.store.Snapshot().Statuses
}

func (s *StatusesStep) Toggle(id int) (models.Status, error) {
	var out models.Status
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		for i := range cur.Statuses {
			if cur.Statuses[i].ID == id {
				cur.Statuses[i].Status = !cur.Statuses[i].Status
				out = cur.Statuses[i]
				return models.Patch{Statuses: &cur.Statuses}, nil
			}
		}
		return models.Patch{}, utils.ErrStatusNotFound
	})
	return out, err
}

func (s *StatusesStep) SetAll(enabled bool) ([]models.Status, error) {
	var out []models.Status
	err := s.store.Modify(func(cur models.WizardData) (models.Patch, error) {
		for i := range cur.Statuses {
			cur.Statuses[i].Status = enabled
		}
		out = cur.Statuses
		return models.Patch{Statuses: &cur.Statuses}, nil
	})
	return out, err
}

func (s *StatusesStep) Summary() Summary {
	statuses := s.List()
	sum := Summary{Total: len(statuses)}
	for _, st := range statuses {
		if st.Status {
			sum.Selected++
		}
	}
	return sum
}

// ColorGroup is the statuses sharing one palette.
type ColorGroup struct {
	Palette  Palette         `json:"palette"`
	Statuses []models.Status `json:"statuses"`
}

// GroupByColor groups statuses by palette in order of first appearance.
// Statuses with unknown colors land in the blue group.
func (s *StatusesStep) GroupByColor() []ColorGroup {
	var groups []ColorGroup
	index := map[string]int{}
	for _, st := range s.List() {
		p := PaletteFor(st.Color)
		i, ok := index[p.Color]
		if !ok {
			i = len(groups)
			index[p.Color] = i
			groups = append(groups, ColorGroup{Palette: p})
		}
		groups[i].Statuses = append(groups[i].Statuses, st)
	}
	return groups
}
