package models

import "strings"

// Slugify lower-cases name and turns each space into a hyphen. Every other
// character is kept, so "Work Order #" becomes "work-order-#". Callers trim
// names before deriving a slug.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
