package model

import "fmt"

// Driver represents a collection driver. A driver is engaged exactly when
// Available is false, and engagement corresponds to at most one task in
// progress at any time.
type Driver struct {
	ID        string
	Name      string
	Contact   string
	Available bool
}

// Validate checks that the driver record is sound.
func (d Driver) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("driver id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("driver name is required")
	}
	return nil
}
