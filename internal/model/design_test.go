package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	d := Design{Name: "bare", Size: 100, Charge: 5, Encapsulation: 85}
	r := d.Resolve()

	assert.Equal(t, 100.0, r.Size)
	assert.InDelta(t, DefaultPDI, r.PDI, 0.001)
	assert.InDelta(t, 120.0, r.Hydrodynamic, 0.001, "hydrodynamic defaults to size*1.2")
	assert.InDelta(t, DefaultStability, r.Stability, 0.001)
	assert.InDelta(t, DefaultSurfaceArea, r.SurfaceArea, 0.001)
	assert.InDelta(t, DefaultDegradationDays, r.DegradationDays, 0.001)
}

func TestResolveExplicitValuesWin(t *testing.T) {
	d := Design{
		Size:             100,
		Charge:           5,
		Encapsulation:    85,
		PDI:              Float64Ptr(0.05),
		HydrodynamicSize: Float64Ptr(105),
		Stability:        Float64Ptr(95),
		SurfaceArea:      Float64Ptr(400),
		DegradationTime:  Float64Ptr(45),
	}
	r := d.Resolve()

	assert.InDelta(t, 0.05, r.PDI, 0.001)
	assert.InDelta(t, 105.0, r.Hydrodynamic, 0.001)
	assert.InDelta(t, 95.0, r.Stability, 0.001)
	assert.InDelta(t, 400.0, r.SurfaceArea, 0.001)
	assert.InDelta(t, 45.0, r.DegradationDays, 0.001)
}

func TestResolveZeroSizeHydrodynamicDefault(t *testing.T) {
	d := Design{Size: 0, Charge: 0, Encapsulation: 50}
	assert.Equal(t, 0.0, d.Resolve().Hydrodynamic)
}

func TestValidate(t *testing.T) {
	t.Run("valid design", func(t *testing.T) {
		d := Design{Size: 100, Charge: -5, Encapsulation: 85, PDI: Float64Ptr(0.2)}
		require.NoError(t, d.Validate())
	})

	t.Run("NaN size", func(t *testing.T) {
		d := Design{Size: math.NaN(), Charge: 0, Encapsulation: 85}
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size_nm")
	})

	t.Run("infinite optional", func(t *testing.T) {
		d := Design{Size: 100, Charge: 0, Encapsulation: 85, SurfaceArea: Float64Ptr(math.Inf(-1))}
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "surface_area")
	})

	t.Run("multiple invalid values reported together", func(t *testing.T) {
		d := Design{Size: math.NaN(), Charge: math.Inf(1), Encapsulation: 85}
		err := d.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size_nm")
		assert.Contains(t, err.Error(), "charge_mv")
	})
}
