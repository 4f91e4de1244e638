package booking

import (
	"servicebook/models"

	"github.com/shopspring/decimal"
)

// PricingPolicy selects how add-on quantities affect the total.
type PricingPolicy struct {
	// QuantityAware charges price × quantity per add-on. When false each
	// matched add-on is charged once regardless of quantity.
	QuantityAware bool
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{QuantityAware: true}
}

// ComputeTotal prices a booking from the service base price, its duration
// and the customer's selected add-ons matched against the service catalog.
func ComputeTotal(base decimal.Decimal, durationMinutes int, selected []models.SelectedAddon, catalog []models.ServiceAddon, policy PricingPolicy) (decimal.Decimal, error) {
	snapshots, err := SnapshotAddons(selected, catalog)
	if err != nil {
		return decimal.Zero, err
	}
	return TotalFromSnapshot(base, durationMinutes, snapshots, policy)
}

// SnapshotAddons captures catalog name and price for each selected add-on.
// Unknown ids are dropped, repeated ids are merged, and the order of first
// appearance is kept. A zero quantity counts as one.
func SnapshotAddons(selected []models.SelectedAddon, catalog []models.ServiceAddon) ([]models.BookingAddon, error) {
	byID := make(map[string]models.ServiceAddon, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	var out []models.BookingAddon
	index := make(map[string]int)
	for _, sel := range selected {
		if sel.Quantity < 0 {
			return nil, newError("SnapshotAddons", ErrValidation, "add-on %s has negative quantity %d", sel.AddonID, sel.Quantity)
		}
		addon, ok := byID[sel.AddonID]
		if !ok {
			continue
		}
		if addon.Price.IsNegative() {
			return nil, newError("SnapshotAddons", ErrValidation, "add-on %s has negative price", addon.ID)
		}
		qty := max(sel.Quantity, 1)
		if i, seen := index[addon.ID]; seen {
			out[i].Quantity += qty
			continue
		}
		index[addon.ID] = len(out)
		out = append(out, models.BookingAddon{
			AddonID:        addon.ID,
			Quantity:       qty,
			PriceAtBooking: addon.Price,
			NameAtBooking:  addon.Name,
		})
	}
	return out, nil
}

// TotalFromSnapshot recomputes a total from prices captured on a booking.
func TotalFromSnapshot(base decimal.Decimal, durationMinutes int, addons []models.BookingAddon, policy PricingPolicy) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, newError("ComputeTotal", ErrValidation, "base price is negative")
	}
	if durationMinutes <= 0 {
		return decimal.Zero, newError("ComputeTotal", ErrValidation, "duration must be positive, got %d", durationMinutes)
	}

	total := base
	for _, a := range addons {
		if a.PriceAtBooking.IsNegative() {
			return decimal.Zero, newError("ComputeTotal", ErrValidation, "add-on %s has negative price", a.AddonID)
		}
		if a.Quantity < 0 {
			return decimal.Zero, newError("ComputeTotal", ErrValidation, "add-on %s has negative quantity", a.AddonID)
		}
		if policy.QuantityAware {
			total = total.Add(a.PriceAtBooking.Mul(decimal.NewFromInt(int64(max(a.Quantity, 1)))))
		} else {
			total = total.Add(a.PriceAtBooking)
		}
	}

	return total.Mul(decimal.NewFromInt(int64(HoursMultiplier(durationMinutes)))), nil
}

// HoursMultiplier is the number of started hours for services longer than
// one hour, and 1 otherwise. 90 minutes bills as 2 hours.
func HoursMultiplier(durationMinutes int) int {
	if durationMinutes <= 60 {
		return 1
	}
	return (durationMinutes + 59) / 60
}
