package costing

import "strings"

// NormalizeUnit trims, lowercases and strips periods from a unit label so
// entries like "Ctn." and "ctn" compare equal.
func NormalizeUnit(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	return strings.ReplaceAll(s, ".", "")
}

// ToKilograms converts a quantity expressed in an arbitrary unit label into
// kilograms using the batch's per-unit weight factor.
//
// Unrecognized labels fall open: the quantity is assumed to already be in
// kilograms. Operators can sanity-check that assumption against the RawKg /
// WastageKg debug figures on the calculation result.
func ToKilograms(qty float64, unitLabel string, unitWeightKg float64) float64 {
	switch NormalizeUnit(unitLabel) {
	case "kg", "kgs", "kilogram", "kilograms":
		return qty
	case "box", "boxes", "carton", "cartons", "crate", "crates", "ctn", "ctns":
		return qty * unitWeightKg
	case "loose", "loosekg", "bulk":
		// already weighed in kg even though the label names a container
		return qty
	case "pack", "packs", "pkt", "pkts":
		// packs without a configured unit weight carry kg quantities
		if unitWeightKg > 0 {
			return qty * unitWeightKg
		}
		return qty
	default:
		return qty
	}
}
