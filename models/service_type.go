package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultApprover is used when approval is switched on without naming anyone.
const DefaultApprover = "Property Manager"

type ApprovalKind string

const (
	ApprovalNone     ApprovalKind = "none"
	ApprovalRequired ApprovalKind = "required"
)

// ApprovalPolicy is either "no approval" or "approval by a specific approver".
// The zero value means no approval. A policy that requires approval always
// carries an approver, and one that does not never carries one.
type ApprovalPolicy struct {
	kind     ApprovalKind
	approver Assignee
}

func NoApproval() ApprovalPolicy {
	return ApprovalPolicy{kind: ApprovalNone}
}

func RequireApproval(approver Assignee) ApprovalPolicy {
	if approver.AssignedTo == "" {
		approver.AssignedTo = DefaultApprover
	}
	if !approver.AssignedToType.Valid() {
		approver.AssignedToType = AssigneeUser
	}
	return ApprovalPolicy{kind: ApprovalRequired, approver: approver}
}

func (p ApprovalPolicy) Required() bool {
	return p.kind == ApprovalRequired
}

func (p ApprovalPolicy) Kind() ApprovalKind {
	if p.Required() {
		return ApprovalRequired
	}
	return ApprovalNone
}

func (p ApprovalPolicy) Approver() (Assignee, bool) {
	if !p.Required() {
		return Assignee{}, false
	}
	return p.approver, true
}

// Label is the display value of the policy: "None" or the approver's name.
func (p ApprovalPolicy) Label() string {
	if !p.Required() {
		return "None"
	}
	return p.approver.AssignedTo
}

func (p ApprovalPolicy) Equal(other ApprovalPolicy) bool {
	return p.Kind() == other.Kind() && p.approver == other.approver
}

type approvalPolicyJSON struct {
	Kind         ApprovalKind `json:"kind"`
	Approver     string       `json:"approver,omitempty"`
	ApproverType AssigneeType `json:"approver_type,omitempty"`
}

func (p ApprovalPolicy) MarshalJSON() ([]byte, error) {
	out := approvalPolicyJSON{Kind: p.Kind()}
	if a, ok := p.Approver(); ok {
		out.Approver = a.AssignedTo
		out.ApproverType = a.AssignedToType
	}
	return json.Marshal(out)
}

func (p *ApprovalPolicy) UnmarshalJSON(data []byte) error {
	var in approvalPolicyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case ApprovalNone, "":
		*p = NoApproval()
	case ApprovalRequired:
		*p = RequireApproval(Assignee{AssignedTo: in.Approver, AssignedToType: in.ApproverType})
	default:
		return fmt.Errorf("unknown approval kind %q", in.Kind)
	}
	return nil
}

type PriceType string

const (
	PriceFixed PriceType = "fixed"
	PriceRange PriceType = "range"
	PriceQuote PriceType = "quote"
)

// ServiceTypeStatus configures who hears about one lifecycle stage of a
// service type.
type ServiceTypeStatus struct {
	Name            string `json:"name"`
	NotifyRequestor bool   `json:"notify_requestor"`
	NotifyAssignee  bool   `json:"notify_assignee"`
}

// ServiceType is a kind of request residents can file. It belongs to the
// category named by CategoryID. A CategoryID that does not resolve leaves the
// service type orphaned.
type ServiceType struct {
	ID          int            `json:"id"`
	RequestType string         `json:"request_type"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	CategoryID  int            `json:"category_id"`
	Approval    ApprovalPolicy `json:"approval"`
	Assignee
	PriceType  PriceType           `json:"price_type,omitempty"`
	PriceFixed *decimal.Decimal    `json:"price_fixed,omitempty"`
	PriceMin   *decimal.Decimal    `json:"price_min,omitempty"`
	PriceMax   *decimal.Decimal    `json:"price_max,omitempty"`
	Status     bool                `json:"status"`
	Statuses   []ServiceTypeStatus `json:"statuses"`
}

// NeedsApproval mirrors the legacy boolean flag.
func (s ServiceType) NeedsApproval() bool {
	return s.Approval.Required()
}

func (s ServiceType) clone() ServiceType {
	statuses := make([]ServiceTypeStatus, len(s.Statuses))
	copy(statuses, s.Statuses)
	s.Statuses = statuses
	s.PriceFixed = cloneDecimal(s.PriceFixed)
	s.PriceMin = cloneDecimal(s.PriceMin)
	s.PriceMax = cloneDecimal(s.PriceMax)
	return s
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
