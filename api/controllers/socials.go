package controllers

import (
	"net/http"

	"github.com/fermedirect/storefront-backend/api/responses"
	"github.com/fermedirect/storefront-backend/api/validators"
	"github.com/fermedirect/storefront-backend/internal/socials"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	"github.com/fermedirect/storefront-backend/pkg/logger"
)

type socialLinkRequest struct {
	Network  string `json:"network" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Enabled  *bool  `json:"enabled,omitempty"`
	Position int    `json:"position" validate:"omitempty,min=0"`
}

func (s socialLinkRequest) toModel() *models.SocialLink {
	return &models.SocialLink{
		Network:  s.Network,
		URL:      s.URL,
		Enabled:  s.Enabled == nil || *s.Enabled,
		Position: s.Position,
	}
}

func SocialListPublic(svc socials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := svc.ListPublic(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, links)
	}
}

func AdminSocialList(svc socials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, links)
	}
}

func SocialCreate(svc socials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body socialLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		link, err := svc.Create(r.Context(), body.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

func SocialUpdate(svc socials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "socialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body socialLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		link := body.toModel()
		link.ID = id
		updated, err := svc.Update(r.Context(), link)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func SocialDelete(svc socials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "socialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
