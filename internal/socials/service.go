package socials

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/pkg/db"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
)

// Service manages the footer's social and contact links.
type Service interface {
	ListPublic(ctx context.Context) ([]models.SocialLink, error)
	ListAll(ctx context.Context) ([]models.SocialLink, error)
	Create(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error)
	Update(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context, enabledOnly bool) ([]models.SocialLink, error)
	Create(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error)
	Update(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("socials service requires a repository")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublic(ctx context.Context) ([]models.SocialLink, error) {
	return s.repo.List(ctx, true)
}

func (s *service) ListAll(ctx context.Context) ([]models.SocialLink, error) {
	return s.repo.List(ctx, false)
}

func (s *service) Create(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error) {
	if err := validateLink(link); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, link)
	if err != nil && db.IsUniqueViolation(err, "") {
		return nil, apperrors.Wrap(apperrors.CodeConflict, err, "network already configured")
	}
	return created, err
}

func (s *service) Update(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error) {
	if err := validateLink(link); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, link)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateLink(link *models.SocialLink) error {
	if strings.TrimSpace(link.Network) == "" {
		return apperrors.New(apperrors.CodeValidation, "network name is required")
	}
	parsed, err := url.Parse(link.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return apperrors.New(apperrors.CodeValidation, "a valid absolute url is required")
	}
	return nil
}
