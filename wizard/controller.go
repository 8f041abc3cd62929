// Package wizard sequences the six setup steps.
package wizard

import (
	"sync"

	"propdesk/models"
	"propdesk/utils"
)

// TotalSteps is the number of steps in the wizard.
const TotalSteps = 6

type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateClosed     State = "closed"
)

// Validator checks one step before the wizard moves past it.
type Validator interface {
	Number() int
	Validate(data models.WizardData) []string
}

type Options struct {
	// ValidateSteps blocks Next while the current step reports problems.
	ValidateSteps bool
	OnComplete    func()
	OnClose       func()
}

// Transition describes one move of the wizard.
type Transition struct {
	From        int   `json:"from"`
	To          int   `json:"to"`
	State       State `json:"state"`
	ScrollToTop bool  `json:"scroll_to_top"`
}

// Controller tracks the current step. It starts at step 1 and never resets
// itself: once completed or closed every further move fails.
type Controller struct {
	mu         sync.Mutex
	step       int
	state      State
	validators map[int]Validator
	snapshot   func() models.WizardData
	opts       Options
}

func NewController(validators []Validator, snapshot func() models.WizardData, opts Options) *Controller {
	byStep := make(map[int]Validator, len(validators))
	for _, v := range validators {
		byStep[v.Number()] = v
	}
	return &Controller{
		step:       1,
		state:      StateInProgress,
		validators: byStep,
		snapshot:   snapshot,
		opts:       opts,
	}
}

func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Next advances one step. From the last step it completes the wizard and
// calls OnComplete.
func (c *Controller) Next() (Transition, error) {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return Transition{}, utils.ErrWizardFinished
	}

	if c.opts.ValidateSteps && c.snapshot != nil {
		if v, ok := c.validators[c.step]; ok {
			if problems := v.Validate(c.snapshot()); len(problems) > 0 {
				step := c.step
				c.mu.Unlock()
				return Transition{}, &utils.StepIncompleteError{Step: step, Problems: problems}
			}
		}
	}

	tr := Transition{From: c.step, ScrollToTop: true}
	var callback func()
	if c.step < TotalSteps {
		c.step++
	} else {
		c.state = StateCompleted
		callback = c.opts.OnComplete
	}
	tr.To, tr.State = c.step, c.state
	c.mu.Unlock()

	if callback != nil {
		callback()
	}
	return tr, nil
}

// Back returns one step. From step 1 it closes the wizard and calls
// OnClose.
func (c *Controller) Back() (Transition, error) {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return Transition{}, utils.ErrWizardFinished
	}

	tr := Transition{From: c.step, ScrollToTop: true}
	var callback func()
	if c.step > 1 {
		c.step--
	} else {
		c.state = StateClosed
		callback = c.opts.OnClose
	}
	tr.To, tr.State = c.step, c.state
	c.mu.Unlock()

	if callback != nil {
		callback()
	}
	return tr, nil
}
