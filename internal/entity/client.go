package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ClientStatusActive   = "ACTIVE"
	ClientStatusInactive = "INACTIVE"
)

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Address   string    `json:"address,omitempty"`
	Website   string    `json:"website,omitempty"`
	Status    string    `json:"status"`
	LeadID    *string   `json:"leadId,omitempty"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewClient(name, ownerID string) (*Client, error) {
	now := time.Now()
	c := &Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Status:    ClientStatusActive,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewClientFromLead copies the lead's contact data onto a new client.
func NewClientFromLead(l *Lead, ownerID string) (*Client, error) {
	name := l.Company
	if name == "" {
		name = l.FullName()
	}
	c, err := NewClient(name, ownerID)
	if err != nil {
		return nil, err
	}
	leadID := l.ID
	c.Email = l.Email
	c.Phone = l.Phone
	c.Company = l.Company
	c.Industry = l.Industry
	c.LeadID = &leadID
	return c, nil
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.OwnerID == "" {
		return errors.New("owner is required")
	}
	if c.Status != ClientStatusActive && c.Status != ClientStatusInactive {
		return errors.New("status must be ACTIVE or INACTIVE")
	}
	return nil
}

type ClientFilter struct {
	Status string
	Search string
}

type ClientRepositoryInterface interface {
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ClientFilter, p Page) ([]*Client, int, error)
}
