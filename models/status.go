package models

// Status is a lifecycle stage label that service types move through.
type Status struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      bool   `json:"status"`
	Color       string `json:"color"`
	OrderCount  *int   `json:"order_count,omitempty"`
}
