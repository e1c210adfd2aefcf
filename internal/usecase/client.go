package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ClientUseCase struct {
	Clients entity.ClientRepositoryInterface
}

func NewClientUseCase(clients entity.ClientRepositoryInterface) *ClientUseCase {
	return &ClientUseCase{Clients: clients}
}

func applyClientPatch(c *entity.Client, in ClientInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Name, in.Name)
	set(&c.Phone, in.Phone)
	set(&c.Company, in.Company)
	set(&c.Industry, in.Industry)
	set(&c.Address, in.Address)
	set(&c.Website, in.Website)
	set(&c.Status, in.Status)
	set(&c.OwnerID, in.OwnerID)
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
}

func (uc *ClientUseCase) Create(ctx context.Context, input ClientInput, actor entity.Identity) (*entity.Client, error) {
	if err := ValidateClientInput(input, true); err != nil {
		return nil, err
	}
	owner := actor.UserID
	if o := deref(input.OwnerID); o != "" {
		owner = o
	}
	c, err := entity.NewClient(*input.Name, owner)
	if err != nil {
		return nil, invalid(ValidationError{"client", err.Error()})
	}
	input.OwnerID = nil
	applyClientPatch(c, input)

	if err := uc.Clients.Create(ctx, c); err != nil {
		return nil, repoError(err, entity.ErrClientNotFound, CodeClientNotFound, "failed to create client")
	}
	return c, nil
}

func (uc *ClientUseCase) Get(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.Clients.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrClientNotFound, CodeClientNotFound, "failed to load client")
	}
	return c, nil
}

func (uc *ClientUseCase) Update(ctx context.Context, id string, input ClientInput) (*entity.Client, error) {
	if err := ValidateClientInput(input, false); err != nil {
		return nil, err
	}
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyClientPatch(c, input)
	c.UpdatedAt = time.Now()

	if err := uc.Clients.Update(ctx, c); err != nil {
		return nil, repoError(err, entity.ErrClientNotFound, CodeClientNotFound, "failed to update client")
	}
	return c, nil
}

func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Clients.Delete(ctx, id); err != nil {
		return repoError(err, entity.ErrClientNotFound, CodeClientNotFound, "failed to delete client")
	}
	return nil
}

func (uc *ClientUseCase) List(ctx context.Context, f entity.ClientFilter, p entity.Page) (entity.PageResult[*entity.Client], error) {
	clients, total, err := uc.Clients.List(ctx, f, p)
	if err != nil {
		return entity.PageResult[*entity.Client]{}, dbError("failed to list clients", err)
	}
	return entity.NewPageResult(clients, total, p), nil
}

type ContactUseCase struct {
	Contacts entity.ContactRepositoryInterface
	Clients  entity.ClientRepositoryInterface
}

func NewContactUseCase(contacts entity.ContactRepositoryInterface, clients entity.ClientRepositoryInterface) *ContactUseCase {
	return &ContactUseCase{Contacts: contacts, Clients: clients}
}

func applyContactPatch(c *entity.Contact, in ContactInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.ClientID, in.ClientID)
	set(&c.FirstName, in.FirstName)
	set(&c.LastName, in.LastName)
	set(&c.Phone, in.Phone)
	set(&c.Position, in.Position)
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.IsPrimary != nil {
		c.IsPrimary = *in.IsPrimary
	}
}

func (uc *ContactUseCase) ensureClient(ctx context.Context, clientID string) error {
	if _, err := uc.Clients.FindByID(ctx, clientID); err != nil {
		return repoError(err, entity.ErrClientNotFound, CodeClientNotFound, "failed to load client")
	}
	return nil
}

func (uc *ContactUseCase) Create(ctx context.Context, input ContactInput) (*entity.Contact, error) {
	if err := ValidateContactInput(input, true); err != nil {
		return nil, err
	}
	if err := uc.ensureClient(ctx, *input.ClientID); err != nil {
		return nil, err
	}
	c, err := entity.NewContact(*input.ClientID, *input.FirstName, deref(input.LastName))
	if err != nil {
		return nil, invalid(ValidationError{"contact", err.Error()})
	}
	applyContactPatch(c, input)

	if err := uc.Contacts.Create(ctx, c); err != nil {
		return nil, repoError(err, entity.ErrContactNotFound, CodeContactNotFound, "failed to create contact")
	}
	return c, nil
}

func (uc *ContactUseCase) Get(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := uc.Contacts.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrContactNotFound, CodeContactNotFound, "failed to load contact")
	}
	return c, nil
}

func (uc *ContactUseCase) Update(ctx context.Context, id string, input ContactInput) (*entity.Contact, error) {
	if err := ValidateContactInput(input, false); err != nil {
		return nil, err
	}
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ClientID != nil && *input.ClientID != c.ClientID {
		if err := uc.ensureClient(ctx, *input.ClientID); err != nil {
			return nil, err
		}
	}
	applyContactPatch(c, input)
	c.UpdatedAt = time.Now()

	if err := uc.Contacts.Update(ctx, c); err != nil {
		return nil, repoError(err, entity.ErrContactNotFound, CodeContactNotFound, "failed to update contact")
	}
	return c, nil
}

func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Contacts.Delete(ctx, id); err != nil {
		return repoError(err, entity.ErrContactNotFound, CodeContactNotFound, "failed to delete contact")
	}
	return nil
}

func (uc *ContactUseCase) List(ctx context.Context, clientID string, p entity.Page) (entity.PageResult[*entity.Contact], error) {
	contacts, total, err := uc.Contacts.List(ctx, clientID, p)
	if err != nil {
		return entity.PageResult[*entity.Contact]{}, dbError("failed to list contacts", err)
	}
	return entity.NewPageResult(contacts, total, p), nil
}
