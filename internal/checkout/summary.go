package checkout

import (
	"fmt"
	"strings"

	"github.com/fermedirect/storefront-backend/internal/cart"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

// RenderSummary builds the plain-text order recap sent over the messaging
// handoff. French labels are part of the storefront contract.
func RenderSummary(state cart.State, sel Selection, serviceFee money.Amount) string {
	var b strings.Builder

	b.WriteString("🛒 Nouvelle commande\n\n")
	for _, line := range state.Items {
		fmt.Fprintf(&b, "- %s (%s) x%d : %s€\n",
			line.ProductName, line.VariantName, line.Quantity, line.LineTotal().Format2())
	}

	fmt.Fprintf(&b, "\nSous-total : %s€\n", state.Subtotal().Format2())
	if state.PromoDiscount.IsPositive() {
		fmt.Fprintf(&b, "Code promo %s : -%s€\n", state.PromoCode, state.PromoDiscount.Format2())
	}
	if serviceFee.IsPositive() {
		fmt.Fprintf(&b, "Frais de service : %s€\n", serviceFee.Format2())
	}
	fmt.Fprintf(&b, "Total : %s€\n", state.Total(serviceFee).Format2())

	fmt.Fprintf(&b, "\nService : %s", sel.Service)
	if sel.Slot != "" {
		fmt.Fprintf(&b, " (%s)", sel.Slot)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Paiement : %s\n", sel.Payment)

	fmt.Fprintf(&b, "\nClient : %s %s\n", sel.Customer.FirstName, sel.Customer.LastName)
	fmt.Fprintf(&b, "Téléphone : %s\n", sel.Customer.Phone)
	if sel.RequiresAddress() {
		fmt.Fprintf(&b, "Adresse : %s\n", sel.Customer.Address)
		if sel.Customer.Complement != "" {
			fmt.Fprintf(&b, "Complément : %s\n", sel.Customer.Complement)
		}
	}

	return b.String()
}
