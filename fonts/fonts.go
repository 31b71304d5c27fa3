package fonts

import (
	"fmt"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	UI      FontName = "ui"
	UISmall FontName = "ui-small"
	Mono    FontName = "mono"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts  = map[FontName]font.Face{}
	faces  = map[faceKey]font.Face{}
	parsed = map[string]*truetype.Font{}
)

func LoadFont(name FontName, ttf []byte) {
	LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) {
	fontData, _ := truetype.Parse(ttf)
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
}

// LoadDefaults registers the built-in UI faces.
func LoadDefaults() {
	LoadFontWithSize(UI, goregular.TTF, 12)
	LoadFontWithSize(UISmall, goregular.TTF, 10)
	LoadFontWithSize(Mono, gomono.TTF, 10)
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}

type faceKey struct {
	file string
	size int
}

// Style selects a variant of a font family.
type Style struct {
	Bold   bool
	Italic bool
}

// Face returns a face for a text object's family and pixel size. Families
// are matched loosely: anything naming a monospace font gets Go Mono, the
// rest Go Regular with the requested weight and slant. Faces are cached.
func Face(family string, size int, style Style, dpi float64) font.Face {
	if size <= 0 {
		size = 16
	}
	file, ttf := pick(family, style)
	key := faceKey{file: file, size: size}
	if f, ok := faces[key]; ok {
		return f
	}

	fnt, ok := parsed[file]
	if !ok {
		var err error
		fnt, err = truetype.Parse(ttf)
		if err != nil {
			panic(fmt.Sprintf("Failed to parse font %s: %v", file, err))
		}
		parsed[file] = fnt
	}
	if dpi <= 0 {
		dpi = 72
	}
	f := truetype.NewFace(fnt, &truetype.Options{
		Size:    float64(size),
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	faces[key] = f
	return f
}

func pick(family string, style Style) (string, []byte) {
	fam := strings.ToLower(family)
	if strings.Contains(fam, "mono") || strings.Contains(fam, "courier") || strings.Contains(fam, "consol") {
		return "gomono", gomono.TTF
	}
	switch {
	case style.Bold && style.Italic:
		return "gobolditalic", gobolditalic.TTF
	case style.Bold:
		return "gobold", gobold.TTF
	case style.Italic:
		return "goitalic", goitalic.TTF
	}
	return "goregular", goregular.TTF
}
