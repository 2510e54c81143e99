package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnit(t *testing.T) {
	assert.Equal(t, "ctn", NormalizeUnit("  Ctn. "))
	assert.Equal(t, "kg", NormalizeUnit("KG"))
	assert.Equal(t, "", NormalizeUnit("   "))
}

func TestToKilogramsMassUnitsPassThrough(t *testing.T) {
	for _, unit := range []string{"kg", "Kgs", "kilogram", "Kilograms"} {
		assert.Equal(t, 35.5, ToKilograms(35.5, unit, 12), "unit %q", unit)
	}
}

func TestToKilogramsContainersMultiplyByUnitWeight(t *testing.T) {
	for _, unit := range []string{"box", "boxes", "carton", "Cartons", "crate", "crates", "ctn", "ctns."} {
		assert.Equal(t, 50.0, ToKilograms(10, unit, 5), "unit %q", unit)
	}
}

func TestToKilogramsLooseAndBulkPassThrough(t *testing.T) {
	for _, unit := range []string{"loose", "loosekg", "bulk"} {
		assert.Equal(t, 18.0, ToKilograms(18, unit, 7), "unit %q", unit)
	}
}

func TestToKilogramsPackDependsOnUnitWeight(t *testing.T) {
	assert.Equal(t, 24.0, ToKilograms(8, "pack", 3))
	assert.Equal(t, 24.0, ToKilograms(8, "pkts", 3))
	// no configured weight means the quantity is already kg
	assert.Equal(t, 8.0, ToKilograms(8, "pack", 0))
	assert.Equal(t, 8.0, ToKilograms(8, "pack", -1))
}

func TestToKilogramsUnknownLabelFailsOpen(t *testing.T) {
	assert.Equal(t, 42.0, ToKilograms(42, "pallets", 9))
	assert.Equal(t, 42.0, ToKilograms(42, "", 9))
}
