package kernel

import (
	"errors"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not created
// through the NewAddress factory method.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a value object holding an immutable shipping address snapshot.
// Orders copy the address at placement time, so later edits to a customer's
// address book never change where an in-flight order ships.
//
// Recipient, phone and street are required; ward, district and city are
// free-form locality fields that may be empty depending on the region.
type Address struct {
	recipient string
	phone     string
	street    string
	ward      string
	district  string
	city      string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address snapshot.
// Recipient, phone and street must be non-empty.
func NewAddress(recipient, phone, street, ward, district, city string) (Address, error) {
	address := Address{
		ward:     ward,
		district: district,
		city:     city,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setRecipient(recipient),
		address.setPhone(phone),
		address.setStreet(street),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate ensures the Address was properly constructed through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Recipient returns the name of the person receiving the shipment.
func (a Address) Recipient() string {
	return a.recipient
}

// Phone returns the contact phone number.
func (a Address) Phone() string {
	return a.phone
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// Ward returns the ward locality field.
func (a Address) Ward() string {
	return a.ward
}

// District returns the district locality field.
func (a Address) District() string {
	return a.district
}

// City returns the city locality field.
func (a Address) City() string {
	return a.city
}

// IsEqual compares two addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a.recipient == other.recipient &&
		a.phone == other.phone &&
		a.street == other.street &&
		a.ward == other.ward &&
		a.district == other.district &&
		a.city == other.city
}

func (a *Address) setRecipient(recipient string) error {
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	a.recipient = recipient
	return nil
}

func (a *Address) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}
