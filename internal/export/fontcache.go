package export

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// FontCache memoizes a parsed TTF so the export path loads it from disk
// at most once. The zero path means no CJK font is configured and callers
// must degrade to the transliterated vector path.
type FontCache struct {
	path string

	once sync.Once
	fnt  *truetype.Font
	err  error
}

func NewFontCache(path string) *FontCache {
	return &FontCache{path: strings.TrimSpace(path)}
}

func (fc *FontCache) Enabled() bool {
	return fc.path != ""
}

func (fc *FontCache) Path() string {
	return fc.path
}

func (fc *FontCache) Font() (*truetype.Font, error) {
	if !fc.Enabled() {
		return nil, fmt.Errorf("no export font configured")
	}
	fc.once.Do(func() {
		raw, err := os.ReadFile(fc.path)
		if err != nil {
			fc.err = fmt.Errorf("failed to read font file: %w", err)
			return
		}
		fnt, err := truetype.Parse(raw)
		if err != nil {
			fc.err = fmt.Errorf("failed to parse TTF: %w", err)
			return
		}
		fc.fnt = fnt
	})
	return fc.fnt, fc.err
}

// Face builds a rendering face at the requested size from the cached font.
func (fc *FontCache) Face(size float64) (font.Face, error) {
	fnt, err := fc.Font()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(fnt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
