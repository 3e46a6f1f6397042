package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a shipping address
// It is immutable - all operations return new Address instances
type Address struct {
	recipient  string
	line1      string
	line2      string
	city       string
	region     string
	postalCode string
	country    string
	phone      string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithAddressLine2 sets the secondary address line (apartment, suite, etc.)
func WithAddressLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// WithPhone sets the contact phone number for delivery
func WithPhone(phone string) AddressOption {
	return func(a *Address) {
		a.phone = strings.TrimSpace(phone)
	}
}

// NewAddress creates a new Address with the required fields
// Recipient, line1, city, postal code, and country are required
func NewAddress(recipient, line1, city, region, postalCode, country string, opts ...AddressOption) (Address, error) {
	recipient = strings.TrimSpace(recipient)
	line1 = strings.TrimSpace(line1)
	city = strings.TrimSpace(city)
	region = strings.TrimSpace(region)
	postalCode = strings.TrimSpace(postalCode)
	country = strings.TrimSpace(country)

	if recipient == "" {
		return Address{}, fmt.Errorf("recipient cannot be empty")
	}
	if len(recipient) > 200 {
		return Address{}, fmt.Errorf("recipient cannot exceed 200 characters")
	}
	if line1 == "" {
		return Address{}, fmt.Errorf("address line cannot be empty")
	}
	if len(line1) > 500 {
		return Address{}, fmt.Errorf("address line cannot exceed 500 characters")
	}
	if city == "" {
		return Address{}, fmt.Errorf("city cannot be empty")
	}
	if postalCode == "" {
		return Address{}, fmt.Errorf("postal code cannot be empty")
	}
	if len(postalCode) > 20 {
		return Address{}, fmt.Errorf("postal code cannot exceed 20 characters")
	}
	if country == "" {
		return Address{}, fmt.Errorf("country cannot be empty")
	}
	if len(country) > 100 {
		return Address{}, fmt.Errorf("country cannot exceed 100 characters")
	}

	addr := Address{
		recipient:  recipient,
		line1:      line1,
		city:       city,
		region:     region,
		postalCode: postalCode,
		country:    country,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	return addr, nil
}

// Recipient returns the recipient name
func (a Address) Recipient() string { return a.recipient }

// Line1 returns the primary address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the secondary address line
func (a Address) Line2() string { return a.line2 }

// City returns the city
func (a Address) City() string { return a.city }

// Region returns the state or province
func (a Address) Region() string { return a.region }

// PostalCode returns the postal code
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country
func (a Address) Country() string { return a.country }

// Phone returns the contact phone number
func (a Address) Phone() string { return a.phone }

// IsZero returns true if the address is the zero value
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns a single-line representation suitable for display
func (a Address) String() string {
	parts := []string{a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	parts = append(parts, a.city)
	if a.region != "" {
		parts = append(parts, a.region)
	}
	parts = append(parts, a.postalCode, a.country)
	return strings.Join(parts, ", ")
}

// addressJSON is the serialized shape of an Address
type addressJSON struct {
	Recipient  string `json:"recipient"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Recipient:  a.recipient,
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		Region:     a.region,
		PostalCode: a.postalCode,
		Country:    a.country,
		Phone:      a.phone,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.recipient = v.Recipient
	a.line1 = v.Line1
	a.line2 = v.Line2
	a.city = v.City
	a.region = v.Region
	a.postalCode = v.PostalCode
	a.country = v.Country
	a.phone = v.Phone
	return nil
}

// Value implements driver.Valuer for database storage (JSON column)
func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal address: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for address scan: %T", value)
	}

	return a.UnmarshalJSON(data)
}
