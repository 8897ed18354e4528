package bidi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	assert.Equal(t, DirLTR, ParseDirection("ltr"))
	assert.Equal(t, DirRTL, ParseDirection("rtl"))
	assert.Equal(t, DirAuto, ParseDirection("auto"))
	assert.Equal(t, DirAuto, ParseDirection("sideways"))
}

func TestGetDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"latin", "hello", DirLTR},
		{"arabic", "مرحبا", DirRTL},
		{"hebrew", "שלום", DirRTL},
		{"leading digits then latin", "123 main st", DirLTR},
		{"leading digits then arabic", "42 مرحبا", DirRTL},
		{"digits and punctuation only", "12:34!", DirAuto},
		{"empty", "", DirAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetDirection(tt.text))
		})
	}
}

func TestGetLocaleDirection(t *testing.T) {
	assert.Equal(t, DirLTR, GetLocaleDirection("en"))
	assert.Equal(t, DirLTR, GetLocaleDirection("en-US"))
	assert.Equal(t, DirRTL, GetLocaleDirection("ar"))
	assert.Equal(t, DirRTL, GetLocaleDirection("ar-SA"))
	assert.Equal(t, DirRTL, GetLocaleDirection("he"))
	assert.Equal(t, DirRTL, GetLocaleDirection("fa-IR"))
	assert.Equal(t, DirLTR, GetLocaleDirection("zh-CN"))
}

func TestWrapWithIsolation(t *testing.T) {
	assert.Equal(t, string(LRI)+"x"+string(PDI), WrapWithIsolation("x", DirLTR))
	assert.Equal(t, string(RLI)+"x"+string(PDI), WrapWithIsolation("x", DirRTL))
	assert.Equal(t, string(FSI)+"x"+string(PDI), WrapWithIsolation("x", DirAuto))
	assert.Equal(t, "x", WrapWithIsolation("x", Direction("none")))
}

func TestIsIsolationChar(t *testing.T) {
	for _, r := range []rune{LRI, RLI, FSI, PDI} {
		assert.True(t, IsIsolationChar(r))
	}
	assert.False(t, IsIsolationChar('x'))
	assert.False(t, IsIsolationChar(' '))
}
