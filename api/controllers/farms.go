package controllers

import (
	"net/http"

	"github.com/fermedirect/storefront-backend/api/responses"
	"github.com/fermedirect/storefront-backend/api/validators"
	"github.com/fermedirect/storefront-backend/internal/catalog"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	"github.com/fermedirect/storefront-backend/pkg/logger"
)

type farmRequest struct {
	Name        string  `json:"name" validate:"required"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
}

func (f farmRequest) toModel() *models.Farm {
	return &models.Farm{
		Name:        f.Name,
		Location:    f.Location,
		Description: f.Description,
		Photo:       f.Photo,
	}
}

func FarmList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farms, err := svc.ListFarms(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, farms)
	}
}

func FarmCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body farmRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		farm, err := svc.CreateFarm(r.Context(), body.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, farm)
	}
}

func FarmUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "farmId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body farmRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		farm := body.toModel()
		farm.ID = id
		updated, err := svc.UpdateFarm(r.Context(), farm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func FarmDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "farmId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteFarm(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
