package contact

import (
	"context"

	"github.com/tundavala/escola/core"
)

type (
	// Repository stores contact messages. It assigns ID and CreatedAt.
	Repository interface {
		CreateContact(ctx context.Context, c Contact) (Contact, error)
		// QueryAllContacts returns every contact message, most recent first.
		QueryAllContacts(ctx context.Context) ([]Contact, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewContact) (Contact, error) {
	return svc.repo.CreateContact(ctx, Contact{
		Name:    nc.Name,
		Email:   nc.Email,
		Phone:   core.StringPtr(nc.Phone),
		Subject: nc.Subject,
		Message: nc.Message,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Contact, error) {
	return svc.repo.QueryAllContacts(ctx)
}
