package hwgraph_test

import (
	"testing"

	hw "hwgraph"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValueFromBits(t *testing.T) {
	v, err := hw.ValueFromBits("10xz")
	require.NoError(t, err)
	require.EqualValues(t, 4, v.Width())
	require.Equal(t, hw.One, v.Bit(3))
	require.Equal(t, hw.Zero, v.Bit(2))
	require.Equal(t, hw.X, v.Bit(1))
	require.Equal(t, hw.Z, v.Bit(0))
	require.Equal(t, "10xz", v.String())
}

func TestValueEqual(t *testing.T) {
	a := hw.NewValue(8, 0x0f)
	b := hw.NewValue(8, 0x0f)
	c := hw.NewValue(8, 0x10)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestValueArithContamination(t *testing.T) {
	a, err := hw.ValueFromBits("1x0")
	require.NoError(t, err)
	b := hw.NewValue(3, 1)
	sum := a.Add(b)
	require.False(t, sum.IsDefined())
	for i := uint(0); i < sum.Width(); i++ {
		require.Equal(t, hw.X, sum.Bit(i))
	}
}

func TestValueArithDefined(t *testing.T) {
	a := hw.NewValue(8, 3)
	b := hw.NewValue(8, 4)
	got, err := a.Add(b).Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 7, got)
}

func TestValueUint64XZPropagation(t *testing.T) {
	u := hw.UndefinedValue(4)
	_, err := u.Uint64()
	require.Error(t, err)
	require.Equal(t, hw.XZPropagation, hw.KindOf(err))
}

func TestValueBitwise(t *testing.T) {
	a := hw.NewValue(4, 0b1100)
	b := hw.NewValue(4, 0b1010)
	tests := []struct {
		name string
		got  hw.Value
		want uint64
	}{
		{"and", a.And(b), 0b1000},
		{"or", a.Or(b), 0b1110},
		{"xor", a.Xor(b), 0b0110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got.Uint64()
			require.NoError(t, err)
			require.EqualValues(t, tt.want, got)
		})
	}
}

func TestValueSliceConcat(t *testing.T) {
	v := hw.NewValue(8, 0xA5)
	hi := v.Slice(7, 4)
	lo := v.Slice(3, 0)
	got, err := hi.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0xA, got)
	got, err = lo.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0x5, got)

	c := hw.Concat(hi, lo)
	if diff := cmp.Diff(v.String(), c.String()); diff != "" {
		t.Fatalf("concat round-trip mismatch:\n%s", diff)
	}
}

func TestValueWideWidth(t *testing.T) {
	v := hw.NewValue(128, 1).Shl(100)
	require.EqualValues(t, 128, v.Width())
	require.Equal(t, hw.One, v.Bit(100))
	require.Equal(t, hw.Zero, v.Bit(0))
}

func TestValueShifts(t *testing.T) {
	v := hw.NewValue(8, 0x01)
	got, err := v.Shl(4).Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0x10, got)

	v2 := hw.NewValue(8, 0x80)
	got, err = v2.Shr(4).Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0x08, got)
}
