package checkout

import (
	"testing"

	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
)

func validCustomer() CustomerInfo {
	return CustomerInfo{
		FirstName: "Marie",
		LastName:  "Dubois",
		Phone:     "0612345678",
		Address:   "12 rue des Lilas",
	}
}

func TestAdvanceFromCartRequiresItems(t *testing.T) {
	sel := Selection{Step: StepCart}

	if _, err := sel.Advance(true); apperrors.As(err) == nil {
		t.Fatalf("expected empty cart to block step 1, got %v", err)
	}
	next, err := sel.Advance(false)
	if err != nil {
		t.Fatalf("expected non-empty cart to pass, got %v", err)
	}
	if next.Step != StepService {
		t.Fatalf("expected step %d, got %d", StepService, next.Step)
	}
}

func TestAdvanceFromServiceRequiresSelection(t *testing.T) {
	sel := Selection{Step: StepService}
	if _, err := sel.Advance(false); err == nil {
		t.Fatal("expected missing service to block step 2")
	}

	sel.Service = "Livraison"
	next, err := sel.Advance(false)
	if err != nil {
		t.Fatalf("expected selected service to pass, got %v", err)
	}
	if next.Step != StepCustomerInfo {
		t.Fatalf("expected step %d, got %d", StepCustomerInfo, next.Step)
	}
}

func TestSelectServiceResetsSlot(t *testing.T) {
	sel := Selection{Service: "Livraison", Slot: "14h-16h"}
	sel.SelectService("Retrait")
	if sel.Slot != "" {
		t.Fatalf("expected slot reset on service change, got %q", sel.Slot)
	}

	sel.Slot = "10h-12h"
	sel.SelectService("Retrait")
	if sel.Slot != "10h-12h" {
		t.Fatalf("expected slot kept when reselecting the same service, got %q", sel.Slot)
	}
}

func TestAdvanceToSummaryRequiresCustomerFields(t *testing.T) {
	sel := Selection{
		Step:     StepCustomerInfo,
		Service:  "Livraison",
		Payment:  "Espèces",
		Customer: validCustomer(),
	}
	sel.Customer.Phone = ""

	_, err := sel.Advance(false)
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error for missing phone, got %v", err)
	}
}

func TestMeetupSkipsAddressRequirement(t *testing.T) {
	sel := Selection{
		Step:    StepCustomerInfo,
		Service: ServiceMeetup,
		Payment: "Espèces",
		Customer: CustomerInfo{
			FirstName: "Marie",
			LastName:  "Dubois",
			Phone:     "0612345678",
		},
	}

	next, err := sel.Advance(false)
	if err != nil {
		t.Fatalf("expected Meetup without address to pass, got %v", err)
	}
	if next.Step != StepSummary {
		t.Fatalf("expected step %d, got %d", StepSummary, next.Step)
	}

	sel.Service = "Livraison"
	if _, err := sel.Advance(false); err == nil {
		t.Fatal("expected delivery without address to be rejected")
	}
}

func TestSummaryStepIsTerminal(t *testing.T) {
	sel := Selection{Step: StepSummary}
	if _, err := sel.Advance(false); err == nil {
		t.Fatal("expected advancing past the summary to fail")
	}
}

func TestBackSaturatesAtCart(t *testing.T) {
	sel := Selection{Step: StepCart}
	if got := sel.Back().Step; got != StepCart {
		t.Fatalf("expected back to stay at step 1, got %d", got)
	}

	sel = Selection{Step: StepSummary, Service: "Livraison", Slot: "14h-16h"}
	back := sel.Back()
	if back.Step != StepCustomerInfo {
		t.Fatalf("expected step %d after back, got %d", StepCustomerInfo, back.Step)
	}
	if back.Service != "Livraison" || back.Slot != "14h-16h" {
		t.Fatal("expected back to keep entered state")
	}
}
