// Package models defines the data structures shared across abook:
// contacts, collection kinds and user preferences.
package models

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	namePattern  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phonePattern = regexp.MustCompile(`^\d{3,}$`)
	emailPattern = regexp.MustCompile(`^[\w.+\-]+@[\w\-]+(\.[\w\-]+)*$`)
	tagPattern   = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
)

// FieldError reports a contact attribute that failed validation
type FieldError struct {
	Field string
	Value string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Rule)
}

// Contact is an immutable contact record. Build one with NewContact.
type Contact struct {
	name    string
	phone   string
	email   string
	address string
	tags    []string // sorted, unique
}

// NewContact validates the attributes and returns a fully populated contact.
// Tags are de-duplicated and sorted.
func NewContact(name, phone, email, address string, tags ...string) (Contact, error) {
	name = strings.Join(strings.Fields(name), " ")
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	address = strings.TrimSpace(address)

	if !namePattern.MatchString(name) {
		return Contact{}, &FieldError{Field: "name", Value: name, Rule: "must be letters, digits and spaces, and not blank"}
	}
	if !phonePattern.MatchString(phone) {
		return Contact{}, &FieldError{Field: "phone", Value: phone, Rule: "must be digits only, at least 3 long"}
	}
	if !emailPattern.MatchString(email) {
		return Contact{}, &FieldError{Field: "email", Value: email, Rule: "must look like local@domain"}
	}
	if address == "" {
		return Contact{}, &FieldError{Field: "address", Value: address, Rule: "must not be blank"}
	}

	set := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if !tagPattern.MatchString(t) {
			return Contact{}, &FieldError{Field: "tag", Value: t, Rule: "must be alphanumeric"}
		}
		set = append(set, t)
	}
	slices.Sort(set)
	set = slices.Compact(set)

	return Contact{name: name, phone: phone, email: email, address: address, tags: set}, nil
}

// MustContact is NewContact that panics on invalid input. Intended for tests.
func MustContact(name, phone, email, address string, tags ...string) Contact {
	c, err := NewContact(name, phone, email, address, tags...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Contact) Name() string    { return c.name }
func (c Contact) Phone() string   { return c.phone }
func (c Contact) Email() string   { return c.email }
func (c Contact) Address() string { return c.address }

// Tags returns a copy of the contact's tags in sorted order
func (c Contact) Tags() []string {
	return slices.Clone(c.tags)
}

// HasTag reports whether the contact carries tag, ignoring case
func (c Contact) HasTag(tag string) bool {
	for _, t := range c.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SameAs reports whether other describes the same real-world contact.
// Two contacts with the same name are the same entity even when their
// other attributes differ.
func (c Contact) SameAs(other Contact) bool {
	return c.name == other.name
}

// Equal reports whether every attribute of other matches c
func (c Contact) Equal(other Contact) bool {
	return c.name == other.name &&
		c.phone == other.phone &&
		c.email == other.email &&
		c.address == other.address &&
		slices.Equal(c.tags, other.tags)
}

// With returns a copy of c with the non-empty fields of patch applied.
// The result is validated like a new contact.
func (c Contact) With(patch ContactPatch) (Contact, error) {
	name, phone, email, address := c.name, c.phone, c.email, c.address
	tags := c.tags
	if patch.Name != "" {
		name = patch.Name
	}
	if patch.Phone != "" {
		phone = patch.Phone
	}
	if patch.Email != "" {
		email = patch.Email
	}
	if patch.Address != "" {
		address = patch.Address
	}
	if patch.Tags != nil {
		tags = patch.Tags
	}
	return NewContact(name, phone, email, address, tags...)
}

func (c Contact) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Phone: %s Email: %s Address: %s", c.name, c.phone, c.email, c.address)
	if len(c.tags) > 0 {
		fmt.Fprintf(&b, " Tags: [%s]", strings.Join(c.tags, "]["))
	}
	return b.String()
}

// ContactPatch lists the attributes an edit changes. Empty fields are kept;
// a non-nil Tags replaces the whole tag set (an empty non-nil slice clears it).
type ContactPatch struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Tags    []string
}

// IsEmpty reports whether the patch changes nothing
func (p ContactPatch) IsEmpty() bool {
	return p.Name == "" && p.Phone == "" && p.Email == "" && p.Address == "" && p.Tags == nil
}
