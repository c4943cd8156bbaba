package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"
)

func TestBuiltinFaces(t *testing.T) {
	assert.Equal(t, basicfont.Face7x13, HUD.Get())
	assert.NotNil(t, Title.Get())
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	assert.Error(t, LoadFont(HUD, []byte("not a font")))
	assert.Equal(t, basicfont.Face7x13, HUD.Get(), "failed load keeps the old face")
}

func TestUnknownFontPanics(t *testing.T) {
	assert.Panics(t, func() { FontName("missing").Get() })
}
