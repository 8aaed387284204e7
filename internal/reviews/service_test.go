package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/pagination"
)

type stubReviewRepo struct {
	reviews    []models.Review
	nextCursor *pagination.Cursor
	lastQuery  listReviewsParams
}

func (s *stubReviewRepo) List(_ context.Context, params listReviewsParams) ([]models.Review, *pagination.Cursor, error) {
	s.lastQuery = params
	return s.reviews, s.nextCursor, nil
}

func (s *stubReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Review, error) {
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			return &s.reviews[i], nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "review not found")
}

func (s *stubReviewRepo) Create(_ context.Context, review *models.Review) (*models.Review, error) {
	review.ID = uuid.New()
	s.reviews = append(s.reviews, *review)
	return review, nil
}

func (s *stubReviewRepo) Update(_ context.Context, review *models.Review) (*models.Review, error) {
	for i := range s.reviews {
		if s.reviews[i].ID == review.ID {
			s.reviews[i] = *review
		}
	}
	return review, nil
}

func (s *stubReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	return nil
}

func newTestReviewService(t *testing.T, repo *stubReviewRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestSubmitForcesModeration(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := newTestReviewService(t, repo)

	review, err := svc.Submit(context.Background(), &models.Review{
		Author:   "Claire",
		Rating:   5,
		Approved: true,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if review.Approved {
		t.Fatal("submitted review must await moderation")
	}
}

func TestSubmitRejectsBadRating(t *testing.T) {
	svc := newTestReviewService(t, &stubReviewRepo{})

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), &models.Review{Author: "Claire", Rating: rating})
		appErr := apperrors.As(err)
		if appErr == nil || appErr.Code() != apperrors.CodeValidation {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestListPublicFiltersApproved(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := newTestReviewService(t, repo)

	if _, err := svc.ListPublic(context.Background(), ListParams{}); err != nil {
		t.Fatalf("ListPublic returned error: %v", err)
	}
	if !repo.lastQuery.ApprovedOnly {
		t.Fatal("public listing must only show approved reviews")
	}

	if _, err := svc.ListAll(context.Background(), ListParams{}); err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if repo.lastQuery.ApprovedOnly {
		t.Fatal("admin listing must include unapproved reviews")
	}
}

func TestListCursorRoundTrip(t *testing.T) {
	next := pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	repo := &stubReviewRepo{nextCursor: &next}
	svc := newTestReviewService(t, repo)

	result, err := svc.ListPublic(context.Background(), ListParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListPublic returned error: %v", err)
	}
	if result.Cursor == "" {
		t.Fatal("expected a next page cursor")
	}

	if _, err := svc.ListPublic(context.Background(), ListParams{Cursor: result.Cursor}); err != nil {
		t.Fatalf("ListPublic with cursor returned error: %v", err)
	}
	parsed := repo.lastQuery.Cursor
	if parsed == nil || parsed.ID != next.ID {
		t.Fatalf("cursor did not round-trip: %+v", parsed)
	}
}

func TestListRejectsBadCursor(t *testing.T) {
	svc := newTestReviewService(t, &stubReviewRepo{})

	_, err := svc.ListPublic(context.Background(), ListParams{Cursor: "not-base64!"})
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestModerateApproves(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := newTestReviewService(t, repo)

	review, err := svc.Submit(context.Background(), &models.Review{Author: "Claire", Rating: 4})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	moderated, err := svc.Moderate(context.Background(), review.ID, true)
	if err != nil {
		t.Fatalf("Moderate returned error: %v", err)
	}
	if !moderated.Approved {
		t.Fatal("expected review to be approved")
	}
}
