package remap

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type person struct {
	Name string
	Age  int
}

type personDTO struct {
	FullName string
	Age      int
}

type status string

type address struct {
	Street string
	City   string
	Lines  []string
}

var errNoStreet = errors.New("no street")

func (a address) CheckedStreet() (string, error) {
	if a.Street == "" {
		return "", errNoStreet
	}

	return a.Street, nil
}

type streetError struct {
	street string
}

func (e *streetError) Error() string { return "invalid street " + e.street }

func (a address) StrictStreet() string {
	if a.Street == "" {
		panic(&streetError{street: a.Street})
	}

	return a.Street
}

type order struct {
	ID    int64
	Total int64
}

type orderDTO struct {
	ID    int64
	Total float64
}

type customer struct {
	Name    string
	Age     int
	Email   string
	Status  status
	Address *address
	Tags    []string
	Orders  []order
	Primary *order
	secret  string
}

type customerDTO struct {
	FullName string
	Age      int
	Email    string
	Status   string
	City     string
	Tags     []string
	Orders   []orderDTO
	Primary  *orderDTO
	Source   string
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}

func newOrderMapper(t *testing.T) *Mapper[order, orderDTO] {
	t.Helper()

	m, err := NewBuilder[order, orderDTO]().
		Replace("Total", "Total", centsToUnits).
		Build()
	require.NoError(t, err)

	return m
}

func newPersonMapper(t *testing.T) *Mapper[person, personDTO] {
	t.Helper()

	m, err := NewBuilder[person, personDTO](WithImplicitMapping(false)).
		Reassign("Name", "FullName").
		Reassign("Age", "Age").
		Build()
	require.NoError(t, err)

	return m
}

// failingOn returns a conversion that fails for one name.
func failingOn(name string) func(string) (string, error) {
	return func(s string) (string, error) {
		if s == name {
			return "", errors.New("refusing " + name)
		}

		return strings.ToUpper(s), nil
	}
}
