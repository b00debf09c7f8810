package kernel_test

import (
	"testing"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from valid amount", func(t *testing.T) {
		m, err := kernel.NewMoney(14990)

		require.NoError(t, err)
		assert.Equal(t, int64(14990), m.Amount())
	})

	t.Run("should create zero money", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
		assert.True(t, m.IsEqual(kernel.ZeroMoney()))
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		m, err := kernel.NewMoney(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, m.IsZero())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should add amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(100)
		b, _ := kernel.NewMoney(250)

		assert.Equal(t, int64(350), a.Add(b).Amount())
	})

	t.Run("should subtract amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(250)
		b, _ := kernel.NewMoney(100)

		assert.Equal(t, int64(150), a.Sub(b).Amount())
	})

	t.Run("should floor subtraction at zero", func(t *testing.T) {
		a, _ := kernel.NewMoney(100)
		b, _ := kernel.NewMoney(250)

		assert.True(t, a.Sub(b).IsZero())
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		a, _ := kernel.NewMoney(14990)

		assert.Equal(t, int64(44970), a.Multiply(3).Amount())
	})

	t.Run("should return zero for non-positive quantity", func(t *testing.T) {
		a, _ := kernel.NewMoney(14990)

		assert.True(t, a.Multiply(0).IsZero())
		assert.True(t, a.Multiply(-2).IsZero())
	})
}

func TestMoney_String(t *testing.T) {
	t.Run("should format amount in minor units", func(t *testing.T) {
		m, _ := kernel.NewMoney(1234)

		assert.Equal(t, "1234", m.String())
	})
}
