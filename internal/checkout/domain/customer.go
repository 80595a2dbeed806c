package domain

import (
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Customer is the checkout form. Card fields are validated for presence
// only; actual payment processing happens elsewhere.
type Customer struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`

	UseShippingAddress bool   `json:"useShippingAddress"`
	ShippingAddress    string `json:"shippingAddress"`
	ShippingCity       string `json:"shippingCity"`
	ShippingPostalCode string `json:"shippingPostalCode"`

	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CardNumber    string        `json:"cardNumber"`
	ExpiryDate    string        `json:"expiryDate"`
	CVV           string        `json:"cvv"`

	TermsAccepted bool `json:"terms"`
}

// ValidationError maps form fields to messages so the caller can render
// per-field errors.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid customer data (%d fields)", len(e.Fields))
}

func (c Customer) Validate() error {
	fields := map[string]string{}

	require := func(field, value, msg string) {
		if strings.TrimSpace(value) == "" {
			fields[field] = msg
		}
	}
	require("firstName", c.FirstName, "Nome richiesto")
	require("lastName", c.LastName, "Cognome richiesto")
	require("email", c.Email, "Email richiesta")
	require("phone", c.Phone, "Telefono richiesto")
	require("address", c.Address, "Indirizzo richiesto")
	require("city", c.City, "Città richiesta")
	require("postalCode", c.PostalCode, "CAP richiesto")
	if !c.TermsAccepted {
		fields["terms"] = "Accettare i termini e condizioni"
	}

	if c.PaymentMethod == PaymentCard || c.PaymentMethod == "" {
		require("cardNumber", c.CardNumber, "Numero carta richiesto")
		require("expiryDate", c.ExpiryDate, "Data scadenza richiesta")
		require("cvv", c.CVV, "CVV richiesto")
	}

	if c.UseShippingAddress {
		require("shippingAddress", c.ShippingAddress, "Indirizzo di spedizione richiesto")
		require("shippingCity", c.ShippingCity, "Città di spedizione richiesta")
		require("shippingPostalCode", c.ShippingPostalCode, "CAP di spedizione richiesto")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
