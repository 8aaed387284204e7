package checkout

import (
	"strings"

	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
)

// ServiceMeetup is the one service that never requires a delivery address:
// the customer collects in person.
const ServiceMeetup = "Meetup"

const (
	StepCart = iota + 1
	StepService
	StepCustomerInfo
	StepSummary
)

// CustomerInfo is the step-three form. Complement is always optional.
type CustomerInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Complement string `json:"complement"`
}

// Selection is the wizard's accumulated state. It lives client-side between
// requests; the server revalidates every transition from scratch.
type Selection struct {
	Step     int          `json:"step"`
	Service  string       `json:"service"`
	Slot     string       `json:"slot"`
	Payment  string       `json:"payment"`
	Customer CustomerInfo `json:"customer"`
}

// SelectService sets the service and always resets the slot, since slots are
// scoped to a service.
func (s *Selection) SelectService(service string) {
	if s.Service != service {
		s.Slot = ""
	}
	s.Service = service
}

// RequiresAddress reports whether the chosen service needs a delivery address.
func (s Selection) RequiresAddress() bool {
	return s.Service != ServiceMeetup
}

// Advance validates a single forward transition. Steps are linear: no
// skipping, and step four is terminal.
func (s Selection) Advance(cartEmpty bool) (Selection, error) {
	switch s.Step {
	case StepCart:
		if cartEmpty {
			return s, apperrors.New(apperrors.CodeStateConflict, "cart is empty")
		}
	case StepService:
		if strings.TrimSpace(s.Service) == "" {
			return s, apperrors.New(apperrors.CodeValidation, "a service must be selected")
		}
	case StepCustomerInfo:
		if err := s.validateCustomer(); err != nil {
			return s, err
		}
	case StepSummary:
		return s, apperrors.New(apperrors.CodeStateConflict, "summary is the final step")
	default:
		return s, apperrors.New(apperrors.CodeValidation, "unknown checkout step")
	}
	s.Step++
	return s, nil
}

// Back decrements by one step, saturating at the cart step. State entered on
// later steps is kept; only completion discards it.
func (s Selection) Back() Selection {
	if s.Step > StepCart {
		s.Step--
	}
	return s
}

func (s Selection) validateCustomer() error {
	missing := make([]string, 0, 5)
	if strings.TrimSpace(s.Customer.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(s.Customer.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(s.Customer.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(s.Payment) == "" {
		missing = append(missing, "payment")
	}
	if s.RequiresAddress() && strings.TrimSpace(s.Customer.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return apperrors.New(apperrors.CodeValidation, "missing required checkout fields").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}
