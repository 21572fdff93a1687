// Package fonts loads TrueType/OpenType font files and measures text.
// A font file that cannot be read or parsed is replaced by an embedded
// Go font so rendering never stops for a missing font; each substitution
// is logged as a warning.
package fonts

import (
	"log"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family is a parsed font handle, safe to share between goroutines.
// A font.Face mutates internal shaping buffers on every glyph, so faces
// are never shared: Face hands out a fresh one per call, and Measure
// runs on an internal cached face under the family's lock.
type Family struct {
	parsed   *opentype.Font
	fallback *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// Load parses the font file at path, falling back to the embedded TTF
// when the path is empty, unreadable, or not a parseable font.
func Load(path string, fallbackTTF []byte) *Family {
	fallback, err := opentype.Parse(fallbackTTF)
	if err != nil {
		// The embedded Go fonts always parse; anything else is a
		// programming error in the caller.
		panic("fonts: embedded fallback font failed to parse: " + err.Error())
	}

	parsed := fallback
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: could not read font %q: %v, using embedded fallback", path, err)
		} else if p, err := opentype.Parse(data); err != nil {
			log.Printf("Warning: could not parse font %q: %v, using embedded fallback", path, err)
		} else {
			parsed = p
		}
	}

	return &Family{
		parsed:   parsed,
		fallback: fallback,
		faces:    map[int]font.Face{},
	}
}

// LoadTitle loads a bold title font, defaulting to embedded Go Bold.
func LoadTitle(path string) *Family {
	return Load(path, gobold.TTF)
}

// LoadRegular loads a regular weight font, defaulting to embedded Go Regular.
func LoadRegular(path string) *Family {
	return Load(path, goregular.TTF)
}

// Face returns a new font.Face at the given pixel size. Every call
// creates a distinct face because faces are stateful and not safe for
// concurrent use; the parsed *opentype.Font behind them is read-only
// and shared.
func (f *Family) Face(size int) font.Face {
	face, err := opentype.NewFace(f.parsed, faceOptions(size))
	if err != nil {
		log.Printf("Warning: could not create font face at size %d: %v, using embedded fallback", size, err)
		face, _ = opentype.NewFace(f.fallback, faceOptions(size))
	}
	return face
}

func faceOptions(size int) *opentype.FaceOptions {
	return &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	}
}

// cachedFace returns the measuring face for a size. Caller holds f.mu.
func (f *Family) cachedFace(size int) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}

	face, err := opentype.NewFace(f.parsed, faceOptions(size))
	if err != nil {
		log.Printf("Warning: could not create font face at size %d: %v, using embedded fallback", size, err)
		face, _ = opentype.NewFace(f.fallback, faceOptions(size))
	}

	f.faces[size] = face
	return face
}

// Measure returns the pixel width and height text occupies at the given
// size. An empty string measures zero wide; the height is the face's
// ascent plus descent so stacked lines do not collide. Measurement runs
// under the family's lock on a cached face, so concurrent callers are
// serialized rather than racing on shared face state.
func (f *Family) Measure(text string, size int) (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	face := f.cachedFace(size)
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if text == "" {
		return 0, height
	}
	return font.MeasureString(face, text).Ceil(), height
}
