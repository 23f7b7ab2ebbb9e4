package store

import (
	"github.com/kilupskalvis/abook/internal/book"
	"github.com/kilupskalvis/abook/internal/models"
)

// contactRecord is the stored form of a contact
type contactRecord struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Tags    []string `json:"tags,omitempty"`
}

func toRecord(c models.Contact) contactRecord {
	return contactRecord{
		Name:    c.Name(),
		Phone:   c.Phone(),
		Email:   c.Email(),
		Address: c.Address(),
		Tags:    c.Tags(),
	}
}

// toContacts validates stored records. Invalid fields and repeated names are
// conversion errors.
func toContacts(path string, recs []contactRecord) ([]models.Contact, error) {
	out := make([]models.Contact, 0, len(recs))
	for _, r := range recs {
		c, err := models.NewContact(r.Name, r.Phone, r.Email, r.Address, r.Tags...)
		if err != nil {
			return nil, &ConversionError{Path: path, Err: err}
		}
		out = append(out, c)
	}
	if _, err := book.NewList(out...); err != nil {
		return nil, &ConversionError{Path: path, Err: err}
	}
	return out, nil
}
