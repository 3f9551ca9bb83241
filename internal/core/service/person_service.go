package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// PersonService implements the persons catalogue, the credit roles and the
// credit links between persons and content.
type PersonService struct {
	persons ports.PersonRepository
	roles   ports.PersonRoleRepository
	credits ports.CreditRepository
	content ports.ContentRepository
	files   ports.FileStore
	logger  zerolog.Logger
}

func NewPersonService(
	persons ports.PersonRepository,
	roles ports.PersonRoleRepository,
	credits ports.CreditRepository,
	content ports.ContentRepository,
	files ports.FileStore,
	logger zerolog.Logger,
) *PersonService {
	return &PersonService{
		persons: persons,
		roles:   roles,
		credits: credits,
		content: content,
		files:   files,
		logger:  logger,
	}
}

func (s *PersonService) ListPersons(ctx context.Context) ([]*domain.Person, error) {
	return s.persons.List(ctx)
}

func (s *PersonService) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	return s.persons.FindByID(ctx, id)
}

func (s *PersonService) SearchPersons(ctx context.Context, query string) ([]*domain.Person, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Person{}, nil
	}
	return s.persons.Search(ctx, query, 10)
}

func (s *PersonService) CreatePerson(ctx context.Context, input ports.PersonInput) (*domain.Person, error) {
	if existing, err := s.persons.FindByName(ctx, input.FullName); err == nil && existing != nil {
		return nil, domain.ErrPersonExists
	}

	var photoURL string
	if input.Photo != nil {
		url, err := s.files.Save(ctx, ports.FilePersonPhoto, input.Photo.Filename, input.Photo.Content)
		if err != nil {
			return nil, fmt.Errorf("save person photo: %w", err)
		}
		photoURL = url
	}

	now := time.Now().UTC()
	person := &domain.Person{
		FullName:  input.FullName,
		PhotoURL:  photoURL,
		Biography: input.Biography,
		BirthDate: input.BirthDate,
		DeathDate: input.DeathDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.persons.Create(ctx, person)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("person_id", created.ID).Str("full_name", created.FullName).Msg("person created")
	return created, nil
}

func (s *PersonService) UpdatePerson(ctx context.Context, id string, input ports.PersonInput) (*domain.Person, error) {
	person, err := s.persons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Photo != nil {
		if person.PhotoURL != "" {
			if err := s.files.Delete(ctx, person.PhotoURL); err != nil {
				s.logger.Warn().Err(err).Str("url", person.PhotoURL).Msg("stale person photo not removed")
			}
		}
		url, err := s.files.Save(ctx, ports.FilePersonPhoto, input.Photo.Filename, input.Photo.Content)
		if err != nil {
			return nil, fmt.Errorf("save person photo: %w", err)
		}
		person.PhotoURL = url
	}

	person.FullName = input.FullName
	person.Biography = input.Biography
	person.BirthDate = input.BirthDate
	person.DeathDate = input.DeathDate
	person.UpdatedAt = time.Now().UTC()

	return s.persons.Update(ctx, person)
}

// DeletePerson refuses to remove a person still credited in content; the
// credits have to be cleared first.
func (s *PersonService) DeletePerson(ctx context.Context, id string) error {
	person, err := s.persons.FindByID(ctx, id)
	if err != nil {
		return err
	}

	credited, err := s.credits.CountByPerson(ctx, id)
	if err != nil {
		return err
	}
	if credited > 0 {
		return domain.ErrPersonInUse
	}

	if err := s.persons.Delete(ctx, id); err != nil {
		return err
	}

	if person.PhotoURL != "" {
		if err := s.files.Delete(ctx, person.PhotoURL); err != nil {
			s.logger.Warn().Err(err).Str("url", person.PhotoURL).Msg("person photo not removed")
		}
	}

	s.logger.Info().Str("person_id", id).Msg("person deleted")
	return nil
}

// ListContentCredits resolves the credit set of a content entry into person
// records and role names.
func (s *PersonService) ListContentCredits(ctx context.Context, contentID string) ([]*ports.ContentCredit, error) {
	if _, err := s.content.FindByID(ctx, contentID); err != nil {
		return nil, err
	}

	credits, err := s.credits.ListByContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	resolved := make([]*ports.ContentCredit, 0, len(credits))
	for _, credit := range credits {
		person, err := s.persons.FindByID(ctx, credit.PersonID)
		if err != nil {
			return nil, err
		}
		role, err := s.roles.FindByID(ctx, credit.RoleID)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, &ports.ContentCredit{Person: person, Role: role.Name})
	}
	return resolved, nil
}

// SetContentCredits replaces the whole credit set of a content entry after
// checking that the content and every referenced person and role exist.
func (s *PersonService) SetContentCredits(ctx context.Context, contentID string, credits []ports.CreditInput) error {
	if _, err := s.content.FindByID(ctx, contentID); err != nil {
		return err
	}

	rows := make([]*domain.Credit, 0, len(credits))
	for _, credit := range credits {
		if _, err := s.persons.FindByID(ctx, credit.PersonID); err != nil {
			return err
		}
		if _, err := s.roles.FindByID(ctx, credit.RoleID); err != nil {
			return err
		}
		rows = append(rows, &domain.Credit{
			ContentID: contentID,
			PersonID:  credit.PersonID,
			RoleID:    credit.RoleID,
		})
	}

	if err := s.credits.Replace(ctx, contentID, rows); err != nil {
		return err
	}

	s.logger.Info().Str("content_id", contentID).Int("credits", len(rows)).Msg("content credits replaced")
	return nil
}

func (s *PersonService) ListRoles(ctx context.Context) ([]*domain.PersonRole, error) {
	return s.roles.List(ctx)
}

func (s *PersonService) GetRole(ctx context.Context, id string) (*domain.PersonRole, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *PersonService) CreateRole(ctx context.Context, name string) (*domain.PersonRole, error) {
	return s.roles.Create(ctx, &domain.PersonRole{Name: name})
}

func (s *PersonService) UpdateRole(ctx context.Context, id, name string) (*domain.PersonRole, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Name = name
	return s.roles.Update(ctx, role)
}

func (s *PersonService) DeleteRole(ctx context.Context, id string) error {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return err
	}
	return s.roles.Delete(ctx, id)
}
