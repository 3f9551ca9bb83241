package ports

import (
	"context"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// PersonRepository defines persistence for credited persons.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) (*domain.Person, error)
	FindByID(ctx context.Context, id string) (*domain.Person, error)

	// FindByName resolves a person by exact full name, for the duplicate
	// check on create.
	FindByName(ctx context.Context, fullName string) (*domain.Person, error)

	List(ctx context.Context) ([]*domain.Person, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Person, error)
	Update(ctx context.Context, person *domain.Person) (*domain.Person, error)
	Delete(ctx context.Context, id string) error
}

// PersonRoleRepository defines persistence for credit roles. The role name is
// unique; a duplicate insert surfaces as domain.ErrPersonRoleExists.
type PersonRoleRepository interface {
	Create(ctx context.Context, role *domain.PersonRole) (*domain.PersonRole, error)
	FindByID(ctx context.Context, id string) (*domain.PersonRole, error)
	List(ctx context.Context) ([]*domain.PersonRole, error)
	Update(ctx context.Context, role *domain.PersonRole) (*domain.PersonRole, error)
	Delete(ctx context.Context, id string) error
}

// CreditRepository defines persistence for person-content credit links.
type CreditRepository interface {
	// Replace swaps the whole credit set of a content entry.
	Replace(ctx context.Context, contentID string, credits []*domain.Credit) error

	ListByContent(ctx context.Context, contentID string) ([]*domain.Credit, error)
	CountByPerson(ctx context.Context, personID string) (int64, error)

	// DeleteByContent removes all credits of a content entry, used when the
	// entry itself is deleted.
	DeleteByContent(ctx context.Context, contentID string) error
}
