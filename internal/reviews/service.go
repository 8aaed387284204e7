package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/pagination"
)

// ListParams holds the public list filters forwarded from the controller.
type ListParams struct {
	ProductID *uuid.UUID
	Limit     int
	Cursor    string
}

// ListResult wraps one page of reviews plus the next page cursor.
type ListResult struct {
	Items  []models.Review `json:"items"`
	Cursor string          `json:"cursor,omitempty"`
}

// Service handles public review submission and admin moderation. Submissions
// land unapproved and only show publicly once an admin approves them.
type Service interface {
	ListPublic(ctx context.Context, params ListParams) (*ListResult, error)
	ListAll(ctx context.Context, params ListParams) (*ListResult, error)
	Submit(ctx context.Context, review *models.Review) (*models.Review, error)
	Moderate(ctx context.Context, id uuid.UUID, approved bool) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context, params listReviewsParams) ([]models.Review, *pagination.Cursor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceParams struct {
	Repo   repository
	Logger *logger.Logger
}

type service struct {
	repo repository
	logg *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("reviews service requires a repository")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) ListPublic(ctx context.Context, params ListParams) (*ListResult, error) {
	return s.list(ctx, params, true)
}

func (s *service) ListAll(ctx context.Context, params ListParams) (*ListResult, error) {
	return s.list(ctx, params, false)
}

func (s *service) list(ctx context.Context, params ListParams, approvedOnly bool) (*ListResult, error) {
	query := listReviewsParams{
		ApprovedOnly: approvedOnly,
		ProductID:    params.ProductID,
		Limit:        params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Items: rows}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) Submit(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, apperrors.New(apperrors.CodeValidation, "rating must be between 1 and 5")
	}
	review.Approved = false
	return s.repo.Create(ctx, review)
}

func (s *service) Moderate(ctx context.Context, id uuid.UUID, approved bool) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	review.Approved = approved
	return s.repo.Update(ctx, review)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
