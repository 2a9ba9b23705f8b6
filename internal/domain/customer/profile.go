package customer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName          = errors.New("customer name cannot be empty")
	ErrInvalidCustomerID  = errors.New("customer ID must be positive")
	ErrNegativeBaseSalary = errors.New("base salary cannot be negative")
)

// Profile is the identity and opening financial facts of a customer, captured once
// when an account is opened.
type Profile struct {
	fullName       string
	customerID     int64
	baseSalary     decimal.Decimal
	openingBalance decimal.Decimal
}

// NewProfile validates and builds a customer profile
func NewProfile(fullName string, customerID int64, baseSalary, openingBalance decimal.Decimal) (Profile, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return Profile{}, ErrEmptyName
	}
	if customerID <= 0 {
		return Profile{}, ErrInvalidCustomerID
	}
	if baseSalary.IsNegative() {
		return Profile{}, ErrNegativeBaseSalary
	}

	return Profile{
		fullName:       fullName,
		customerID:     customerID,
		baseSalary:     baseSalary,
		openingBalance: openingBalance,
	}, nil
}

func (p Profile) FullName() string                { return p.fullName }
func (p Profile) CustomerID() int64               { return p.customerID }
func (p Profile) BaseSalary() decimal.Decimal     { return p.baseSalary }
func (p Profile) OpeningBalance() decimal.Decimal { return p.openingBalance }
