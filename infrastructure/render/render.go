package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"ttphotos/domain/repository"
	"ttphotos/infrastructure/logger"

	"github.com/fogleman/gg"
	"github.com/sunshineplan/imgconv"
)

// Slide variants
const (
	VariantIntro  = "intro"
	VariantSong   = "song"
	VariantLyrics = "lyrics"
)

const (
	canvasWidth  = 1080
	canvasHeight = 1920
	jpegQuality  = 90

	introText  = "It's just a song.."
	footerText = "Follow for more underrated gems"

	regularFont = "Inter-Regular.ttf"
	boldFont    = "Inter-Bold.ttf"
)

// SlideRequest describes a single render call. It is never persisted.
type SlideRequest struct {
	Variant    string
	Background string
	Song       string
	Lyrics     string
}

// ValidVariant reports whether v names a known slide variant.
func ValidVariant(v string) bool {
	return v == VariantIntro || v == VariantSong || v == VariantLyrics
}

// Renderer composites 1080x1920 carousel slides: a cover-fit background (or
// gradient fallback), a vignette and scrim, variant text and a footer.
type Renderer struct {
	photos   repository.IPhotoStore
	library  repository.ISongLibrary
	fontsDir string
	gemPath  string
}

func NewRenderer(photos repository.IPhotoStore, library repository.ISongLibrary, fontsDir, gemPath string) *Renderer {
	return &Renderer{photos: photos, library: library, fontsDir: fontsDir, gemPath: gemPath}
}

// Render produces encoded JPEG bytes for the request. Missing backgrounds and
// blank lyrics are substituted, never surfaced as errors; only an unknown
// variant or an encoder failure can fail.
func (r *Renderer) Render(req SlideRequest) ([]byte, error) {
	if !ValidVariant(req.Variant) {
		return nil, fmt.Errorf("unknown slide variant %q", req.Variant)
	}

	dc := gg.NewContext(canvasWidth, canvasHeight)
	r.drawBackground(dc, req.Background)
	drawVignette(dc)

	// Dark scrim keeps white text readable over bright photos.
	dc.SetRGBA(0, 0, 0, 0.4)
	dc.DrawRectangle(0, 0, canvasWidth, canvasHeight)
	dc.Fill()

	switch req.Variant {
	case VariantIntro:
		r.setFont(dc, boldFont, 72)
		drawOutlined(dc, introText, canvasWidth/2, canvasHeight/2, 3)
	case VariantSong:
		r.setFont(dc, boldFont, 48)
		drawOutlined(dc, "the song: "+req.Song, canvasWidth/2, canvasHeight/2, 2)
	case VariantLyrics:
		r.drawLyrics(dc, req.Lyrics)
	}

	r.drawGem(dc)
	r.setFont(dc, boldFont, 32)
	drawOutlined(dc, footerText, canvasWidth/2, canvasHeight-180, 3)

	var buf bytes.Buffer
	err := imgconv.Write(&buf, dc.Image(), &imgconv.FormatOption{
		Format:       imgconv.JPEG,
		EncodeOption: []imgconv.EncodeOption{imgconv.Quality(jpegQuality)},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding slide: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawLyrics(dc *gg.Context, lyrics string) {
	if strings.TrimSpace(lyrics) == "" {
		// Never render a blank panel.
		lyrics = r.library.FallbackLyrics()
	}

	r.setFont(dc, regularFont, 36)
	maxWidth := float64(canvasWidth - 160)
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
	lines := WrapLines(measure, lyrics, maxWidth)

	const lineHeight = 50.0
	const padding = 48.0
	blockHeight := float64(len(lines)) * lineHeight

	widest := 0.0
	for _, line := range lines {
		if w := measure(line); w > widest {
			widest = w
		}
	}

	panelW := math.Min(widest+2*padding, canvasWidth-80)
	panelH := blockHeight + 2*padding
	panelX := (canvasWidth - panelW) / 2
	panelY := (canvasHeight - panelH) / 2

	dc.SetRGBA(0, 0, 0, 0.38)
	dc.DrawRoundedRectangle(panelX, panelY, panelW, panelH, 36)
	dc.Fill()

	startY := panelY + padding + lineHeight/2
	for i, line := range lines {
		drawOutlined(dc, line, canvasWidth/2, startY+float64(i)*lineHeight, 1.5)
	}
}

func (r *Renderer) drawBackground(dc *gg.Context, name string) {
	img := r.loadBackground(name)
	if img == nil {
		drawGradient(dc)
		return
	}
	bounds := img.Bounds()
	scale := math.Max(
		canvasWidth/float64(bounds.Dx()),
		canvasHeight/float64(bounds.Dy()),
	)
	w := int(math.Ceil(float64(bounds.Dx()) * scale))
	h := int(math.Ceil(float64(bounds.Dy()) * scale))
	resized := imgconv.Resize(img, &imgconv.ResizeOption{Width: w, Height: h})
	dc.DrawImage(resized, (canvasWidth-w)/2, (canvasHeight-h)/2)
}

func (r *Renderer) loadBackground(name string) image.Image {
	if name == "" || r.photos == nil {
		return nil
	}
	data, err := r.photos.Open(name)
	if err != nil {
		logger.GetLogger().WithField("background", name).WithField("error", err).Warn("Background photo unavailable, using gradient")
		return nil
	}
	img, err := imgconv.Decode(bytes.NewReader(data))
	if err != nil {
		logger.GetLogger().WithField("background", name).WithField("error", err).Warn("Background photo undecodable, using gradient")
		return nil
	}
	return img
}

func (r *Renderer) drawGem(dc *gg.Context) {
	if r.gemPath == "" {
		return
	}
	f, err := os.Open(r.gemPath)
	if err != nil {
		return
	}
	defer f.Close()
	img, err := imgconv.Decode(f)
	if err != nil {
		return
	}
	const gemSize = 120
	resized := imgconv.Resize(img, &imgconv.ResizeOption{Width: gemSize, Height: gemSize})
	dc.DrawImage(resized, (canvasWidth-gemSize)/2, 180)
}

// setFont loads a face from the fonts directory; when the file is missing the
// context keeps its current face so rendering degrades instead of failing.
func (r *Renderer) setFont(dc *gg.Context, file string, points float64) {
	if r.fontsDir == "" {
		return
	}
	if err := dc.LoadFontFace(filepath.Join(r.fontsDir, file), points); err != nil {
		logger.GetLogger().WithField("font", file).WithField("error", err).Warn("Font load failed, using default face")
	}
}

// drawOutlined draws a stroke-then-fill string: dark passes offset around the
// anchor, then the white fill on top.
func drawOutlined(dc *gg.Context, s string, x, y, width float64) {
	dc.SetRGB(0, 0, 0)
	for dy := -width; dy <= width; dy += width {
		for dx := -width; dx <= width; dx += width {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawStringAnchored(s, x+dx, y+dy, 0.5, 0.5)
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

// Three-stop fallback gradient used when no background photo is available.
func drawGradient(dc *gg.Context) {
	grad := gg.NewLinearGradient(0, 0, 0, canvasHeight)
	grad.AddColorStop(0, color.RGBA{R: 0x0f, G: 0x0c, B: 0x29, A: 0xff})
	grad.AddColorStop(0.5, color.RGBA{R: 0x30, G: 0x2b, B: 0x63, A: 0xff})
	grad.AddColorStop(1, color.RGBA{R: 0x24, G: 0x24, B: 0x3e, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, canvasWidth, canvasHeight)
	dc.Fill()
}

// Radial vignette: transparent center, 35% black at the far corner.
func drawVignette(dc *gg.Context) {
	cx, cy := float64(canvasWidth)/2, float64(canvasHeight)/2
	radius := math.Hypot(cx, cy)
	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
	grad.AddColorStop(0, color.RGBA{})
	grad.AddColorStop(1, color.RGBA{A: 89})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, canvasWidth, canvasHeight)
	dc.Fill()
}
