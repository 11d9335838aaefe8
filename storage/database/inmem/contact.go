package inmemdb

import (
	"context"

	"github.com/tundavala/escola/core/contact"
)

type contactRepository struct {
	db *table[contact.Contact]
}

var _ contact.Repository = (*contactRepository)(nil) // interface compliance check

func NewContactRepository(db *DB) contact.Repository {
	return &contactRepository{db: db.contact}
}

func (repo *contactRepository) CreateContact(_ context.Context, c contact.Contact) (contact.Contact, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c.ID = repo.db.newID()
	c.CreatedAt = nowFunc()
	repo.db.insert(c.ID, c.CreatedAt, c)
	return c, nil
}

func (repo *contactRepository) QueryAllContacts(context.Context) ([]contact.Contact, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(), nil
}
