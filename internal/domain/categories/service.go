package categories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minNameLength = 2
	maxNameLength = 50
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, noopCache{}, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

func (s *Service) ListCategories(ctx context.Context, ownerID string, filter ListFilter) ([]Category, error) {
	all, ok := s.cache.GetByOwnerID(ownerID)
	if !ok {
		var err error
		all, err = s.repo.ListCategories(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		s.cache.SetByOwnerID(ownerID, all, s.cacheTTL)
	}

	result := make([]Category, 0, len(all))
	for _, category := range all {
		if filter.Type != "" && category.Type != filter.Type {
			continue
		}
		if filter.ActiveOnly && !category.Active {
			continue
		}
		result = append(result, category)
	}
	return result, nil
}

func (s *Service) GetCategory(ctx context.Context, ownerID, categoryID string) (*Category, error) {
	if uuid.Validate(categoryID) != nil {
		return nil, ErrCategoryNotFound
	}
	return s.repo.GetCategoryByID(ctx, ownerID, categoryID)
}

// Resolve finds the owner's category of the given type either by id or, when id is empty, by name.
func (s *Service) Resolve(ctx context.Context, ownerID string, categoryType Type, categoryID, name string) (*Category, error) {
	categoryID = strings.TrimSpace(categoryID)
	name = strings.TrimSpace(name)

	var (
		category *Category
		err      error
	)
	switch {
	case categoryID != "":
		if _, parseErr := uuid.Parse(categoryID); parseErr != nil {
			return nil, ErrCategoryNotFound
		}
		category, err = s.repo.GetCategoryByID(ctx, ownerID, categoryID)
	case name != "":
		category, err = s.repo.FindCategoryByName(ctx, ownerID, categoryType, name)
	default:
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	if category.Type != categoryType {
		return nil, ErrCategoryTypeMismatch
	}
	return category, nil
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidCategoryType
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.OwnerID, input.Type, name, "")
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category := Category{
		ID:      uuid.NewString(),
		OwnerID: input.OwnerID,
		Name:    name,
		Type:    input.Type,
		Active:  true,
	}

	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}

	s.cache.DeleteByOwnerID(input.OwnerID)
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidCategoryType
	}

	category, err := s.GetCategory(ctx, input.OwnerID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Type != category.Type {
		inUse, err := s.repo.CountEntriesByCategoryID(ctx, input.OwnerID, category.ID)
		if err != nil {
			return nil, err
		}
		if inUse > 0 {
			return nil, ErrCategoryInUse
		}
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.OwnerID, input.Type, name, category.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category.Name = name
	category.Type = input.Type
	category.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.cache.DeleteByOwnerID(input.OwnerID)
	return category, nil
}

// SetActive toggles the active flag. Deactivation is allowed regardless of usage.
func (s *Service) SetActive(ctx context.Context, ownerID, categoryID string, active bool) (*Category, error) {
	category, err := s.GetCategory(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	category.Active = active
	category.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.cache.DeleteByOwnerID(ownerID)
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	if _, err := s.GetCategory(ctx, ownerID, categoryID); err != nil {
		return err
	}

	inUse, err := s.repo.CountEntriesByCategoryID(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.repo.DeleteCategory(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	s.cache.DeleteByOwnerID(ownerID)
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	length := len([]rune(name))
	if length < minNameLength || length > maxNameLength {
		return "", ErrInvalidCategoryName
	}
	return name, nil
}
