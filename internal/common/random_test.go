package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMustGetRandomASCII_Length(t *testing.T) {
	for _, n := range []int{0, 1, 16, 8192} {
		payload := MustGetRandomASCII(n)
		require.Len(t, payload, n)
		for _, b := range payload {
			require.Contains(t, printableASCII, string(b))
		}
	}
}

func TestMustGetRandomASCII_PanicsOnNegative(t *testing.T) {
	require.Panics(t, func() { MustGetRandomASCII(-1) })
}
