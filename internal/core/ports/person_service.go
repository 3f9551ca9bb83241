package ports

import (
	"context"
	"time"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// PersonInput carries the payload for creating or updating a person. A nil
// Photo leaves the stored photo untouched.
type PersonInput struct {
	FullName  string
	Biography string
	BirthDate *time.Time
	DeathDate *time.Time
	Photo     *FileUpload
}

// CreditInput is one entry of a content credit set.
type CreditInput struct {
	PersonID string
	RoleID   string
}

// ContentCredit is a credit resolved for presentation, with the person
// record and the role name in place of their ids.
type ContentCredit struct {
	Person *domain.Person `json:"person"`
	Role   string         `json:"role"`
}

// PersonService implements the persons catalogue, credit roles and the
// person-content credit links.
type PersonService interface {
	ListPersons(ctx context.Context) ([]*domain.Person, error)
	GetPerson(ctx context.Context, id string) (*domain.Person, error)
	SearchPersons(ctx context.Context, query string) ([]*domain.Person, error)
	CreatePerson(ctx context.Context, input PersonInput) (*domain.Person, error)
	UpdatePerson(ctx context.Context, id string, input PersonInput) (*domain.Person, error)

	// DeletePerson refuses to remove a person still credited in content.
	DeletePerson(ctx context.Context, id string) error

	ListContentCredits(ctx context.Context, contentID string) ([]*ContentCredit, error)

	// SetContentCredits replaces the credit set of a content entry. Every
	// referenced person and role must exist.
	SetContentCredits(ctx context.Context, contentID string, credits []CreditInput) error

	ListRoles(ctx context.Context) ([]*domain.PersonRole, error)
	GetRole(ctx context.Context, id string) (*domain.PersonRole, error)
	CreateRole(ctx context.Context, name string) (*domain.PersonRole, error)
	UpdateRole(ctx context.Context, id, name string) (*domain.PersonRole, error)
	DeleteRole(ctx context.Context, id string) error
}
