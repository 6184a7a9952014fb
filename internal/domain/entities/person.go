package entities

import (
	"errors"
	"strings"
)

var ErrAddressWithoutName = errors.New("address has no buyer name")

// Address is a host billing or shipping address.
type Address struct {
	FirstName    string   `json:"firstname" dynamodbav:"firstname"`
	LastName     string   `json:"lastname" dynamodbav:"lastname"`
	Email        string   `json:"email" dynamodbav:"email"`
	Telephone    string   `json:"telephone" dynamodbav:"telephone"`
	VatID        string   `json:"vat_id,omitempty" dynamodbav:"vat_id,omitempty"`
	DocumentType string   `json:"document_type,omitempty" dynamodbav:"document_type,omitempty"`
	Street       []string `json:"street" dynamodbav:"street"`
	City         string   `json:"city" dynamodbav:"city"`
	Region       string   `json:"region" dynamodbav:"region"`
	PostCode     string   `json:"postcode" dynamodbav:"postcode"`
	CountryID    string   `json:"country_id" dynamodbav:"country_id"`
}

// Person is the gateway view of a buyer or a shipping recipient.
type Person struct {
	Document     string         `json:"document,omitempty"`
	DocumentType string         `json:"documentType,omitempty"`
	Name         string         `json:"name"`
	Surname      string         `json:"surname"`
	Email        string         `json:"email,omitempty"`
	Mobile       string         `json:"mobile,omitempty"`
	Address      *PersonAddress `json:"address,omitempty"`
}

type PersonAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// PersonFromAddress projects a host address into a gateway person.
//
// The projection is pure. An address without any name is rejected because the
// gateway cannot identify the buyer without it.
func PersonFromAddress(a Address) (Person, error) {
	name := strings.TrimSpace(a.FirstName)
	surname := strings.TrimSpace(a.LastName)
	if name == "" && surname == "" {
		return Person{}, ErrAddressWithoutName
	}

	p := Person{
		Document:     strings.TrimSpace(a.VatID),
		DocumentType: strings.TrimSpace(a.DocumentType),
		Name:         name,
		Surname:      surname,
		Email:        strings.TrimSpace(a.Email),
		Mobile:       strings.TrimSpace(a.Telephone),
	}

	street := strings.TrimSpace(strings.Join(a.Street, " "))
	if street != "" || a.City != "" || a.CountryID != "" {
		p.Address = &PersonAddress{
			Street:     street,
			City:       strings.TrimSpace(a.City),
			State:      strings.TrimSpace(a.Region),
			PostalCode: strings.TrimSpace(a.PostCode),
			Country:    strings.ToUpper(strings.TrimSpace(a.CountryID)),
			Phone:      strings.TrimSpace(a.Telephone),
		}
	}
	return p, nil
}
