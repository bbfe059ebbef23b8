package models

// Customer represents a registered customer
type Customer struct {
	ID           int64     `json:"id"`
	Version      Version   `json:"version"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postalCode"`
	CreatedDate  Timestamp `json:"createdDate"`
	UpdatedDate  Timestamp `json:"updatedDate"`
}

// CustomerInput is the create payload.
type CustomerInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
}

// CustomerUpdate is the full-record update payload.
type CustomerUpdate struct {
	Version Version `json:"version"`
	CustomerInput
}

// Input returns the editable fields of c.
func (c Customer) Input() CustomerInput {
	return CustomerInput{
		Name:         c.Name,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		State:        c.State,
		PostalCode:   c.PostalCode,
	}
}

// NewCustomerUpdate echoes the version last observed on observed.
func NewCustomerUpdate(observed Customer, in CustomerInput) CustomerUpdate {
	return CustomerUpdate{Version: observed.Version, CustomerInput: in}
}

// Validate checks the required fields; address line 2 is optional.
func (in CustomerInput) Validate() error {
	return firstError(
		requireText(in.Name, "name"),
		requireText(in.Email, "email"),
		requireText(in.PhoneNumber, "phone number"),
		requireText(in.AddressLine1, "address line 1"),
		requireText(in.City, "city"),
		requireText(in.State, "state"),
		requireText(in.PostalCode, "postal code"),
	)
}
