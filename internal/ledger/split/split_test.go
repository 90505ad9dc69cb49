package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func participants(ids ...string) []ShareInput {
	out := make([]ShareInput, len(ids))
	for i, id := range ids {
		out[i] = ShareInput{MemberID: id}
	}
	return out
}

func shareSum(shares []Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	t.Run("creates a strategy per method", func(t *testing.T) {
		for _, m := range []Method{MethodEqual, MethodUnequal, MethodPercentage} {
			s, err := f.Create(m)
			require.NoError(t, err)
			require.Equal(t, m, s.Method())
		}
	})

	t.Run("rejects unknown methods", func(t *testing.T) {
		_, err := f.CreateFromString("fibonacci")
		require.ErrorIs(t, err, ErrUnknownMethod)
	})
}

func TestEqualStrategy(t *testing.T) {
	s := &EqualStrategy{}

	t.Run("divides evenly", func(t *testing.T) {
		shares, err := s.Calculate(dec("90"), participants("a", "b", "c"))
		require.NoError(t, err)
		require.Len(t, shares, 3)
		for _, sh := range shares {
			require.True(t, sh.Amount.Equal(dec("30")), "got %s", sh.Amount)
		}
	})

	t.Run("assigns the remainder to the first participant", func(t *testing.T) {
		shares, err := s.Calculate(dec("100"), participants("a", "b", "c"))
		require.NoError(t, err)
		require.True(t, shares[0].Amount.Equal(dec("33.34")), "got %s", shares[0].Amount)
		require.True(t, shares[1].Amount.Equal(dec("33.33")), "got %s", shares[1].Amount)
		require.True(t, shares[2].Amount.Equal(dec("33.33")), "got %s", shares[2].Amount)
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := s.Calculate(dec("100"), participants("a", "b", "c"))
		require.NoError(t, err)
		second, err := s.Calculate(dec("100"), participants("a", "b", "c"))
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("rejects empty participants", func(t *testing.T) {
		_, err := s.Calculate(dec("100"), nil)
		require.ErrorIs(t, err, ErrNoParticipants)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := s.Calculate(dec("0"), participants("a"))
		require.ErrorIs(t, err, ErrNonPositiveAmount)
		_, err = s.Calculate(dec("-5"), participants("a"))
		require.ErrorIs(t, err, ErrNonPositiveAmount)
	})
}

func TestUnequalStrategy(t *testing.T) {
	s := &UnequalStrategy{}

	t.Run("returns the stated amounts", func(t *testing.T) {
		shares, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Amount: decPtr("70")},
			{MemberID: "b", Amount: decPtr("30")},
		})
		require.NoError(t, err)
		require.True(t, shares[0].Amount.Equal(dec("70")))
		require.True(t, shares[1].Amount.Equal(dec("30")))
	})

	t.Run("accepts sums within a cent and pins the residual on the first", func(t *testing.T) {
		shares, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Amount: decPtr("66.67")},
			{MemberID: "b", Amount: decPtr("33.34")},
		})
		require.NoError(t, err)
		require.True(t, shareSum(shares).Equal(dec("100")), "sum %s", shareSum(shares))
	})

	t.Run("rejects sums off by more than a cent", func(t *testing.T) {
		_, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Amount: decPtr("50")},
			{MemberID: "b", Amount: decPtr("49")},
		})
		require.ErrorIs(t, err, ErrAmountsMismatch)
	})

	t.Run("rejects negative shares", func(t *testing.T) {
		_, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Amount: decPtr("110")},
			{MemberID: "b", Amount: decPtr("-10")},
		})
		require.ErrorIs(t, err, ErrNegativeShare)
	})

	t.Run("rejects partially supplied amounts", func(t *testing.T) {
		_, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Amount: decPtr("100")},
			{MemberID: "b"},
		})
		require.ErrorIs(t, err, ErrMissingAmount)
	})

	t.Run("degrades to an equal split without any amounts", func(t *testing.T) {
		shares, err := s.Calculate(dec("100"), participants("a", "b"))
		require.NoError(t, err)
		require.True(t, shares[0].Amount.Equal(dec("50")))
		require.True(t, shares[1].Amount.Equal(dec("50")))
	})
}

func TestPercentageStrategy(t *testing.T) {
	s := &PercentageStrategy{}

	t.Run("splits by percentage", func(t *testing.T) {
		shares, err := s.Calculate(dec("200"), []ShareInput{
			{MemberID: "a", Percentage: decPtr("75")},
			{MemberID: "b", Percentage: decPtr("25")},
		})
		require.NoError(t, err)
		require.True(t, shares[0].Amount.Equal(dec("150")))
		require.True(t, shares[1].Amount.Equal(dec("50")))
	})

	t.Run("rounding drift lands on the first participant", func(t *testing.T) {
		shares, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Percentage: decPtr("33.33")},
			{MemberID: "b", Percentage: decPtr("33.33")},
			{MemberID: "c", Percentage: decPtr("33.34")},
		})
		require.NoError(t, err)
		require.True(t, shareSum(shares).Equal(dec("100")), "sum %s", shareSum(shares))
	})

	t.Run("rejects percentages not summing to 100", func(t *testing.T) {
		_, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Percentage: decPtr("60")},
			{MemberID: "b", Percentage: decPtr("30")},
		})
		require.ErrorIs(t, err, ErrPercentagesMismatch)
	})

	t.Run("rejects out-of-range percentages", func(t *testing.T) {
		_, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Percentage: decPtr("150")},
			{MemberID: "b", Percentage: decPtr("-50")},
		})
		require.ErrorIs(t, err, ErrPercentageOutOfRange)
	})

	t.Run("rejects partially supplied percentages", func(t *testing.T) {
		_, err := s.Calculate(dec("100"), []ShareInput{
			{MemberID: "a", Percentage: decPtr("100")},
			{MemberID: "b"},
		})
		require.ErrorIs(t, err, ErrMissingPercentage)
	})

	t.Run("degrades to an equal split without any percentages", func(t *testing.T) {
		shares, err := s.Calculate(dec("99.99"), participants("a", "b", "c"))
		require.NoError(t, err)
		for _, sh := range shares {
			require.True(t, sh.Amount.Equal(dec("33.33")), "got %s", sh.Amount)
		}
	})
}

// Shares must sum exactly to the total for any amount and group size.
func TestEqualSharesConserveTotal(t *testing.T) {
	s := &EqualStrategy{}
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(1, 10_000_000).Draw(t, "cents")
		n := rapid.IntRange(1, 25).Draw(t, "participants")

		total := decimal.New(cents, -2)
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}

		shares, err := s.Calculate(total, participants(ids...))
		if err != nil {
			t.Fatalf("calculate: %v", err)
		}
		if !shareSum(shares).Equal(total) {
			t.Fatalf("shares sum to %s, want %s", shareSum(shares), total)
		}
		for _, sh := range shares[1:] {
			if sh.Amount.IsNegative() {
				t.Fatalf("negative share %s", sh.Amount)
			}
		}
	})
}

func TestPercentageSharesConserveTotal(t *testing.T) {
	s := &PercentageStrategy{}
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(1, 10_000_000).Draw(t, "cents")
		a := rapid.Int64Range(0, 10_000).Draw(t, "firstPct")

		total := decimal.New(cents, -2)
		first := decimal.New(a, -2)
		second := hundred.Sub(first)

		shares, err := s.Calculate(total, []ShareInput{
			{MemberID: "a", Percentage: &first},
			{MemberID: "b", Percentage: &second},
		})
		if err != nil {
			t.Fatalf("calculate: %v", err)
		}
		if !shareSum(shares).Equal(total) {
			t.Fatalf("shares sum to %s, want %s", shareSum(shares), total)
		}
	})
}
