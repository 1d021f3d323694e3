// Command blurdemo applies a Gaussian blur to a PNG using the software
// backend and writes the result next to it.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/blur"
	"github.com/gogpu/blur/backend/software"
)

func main() {
	var (
		input  = flag.String("input", "", "input PNG (empty generates a test card)")
		output = flag.String("output", "blurred.png", "output file")
		sigmaX = flag.Float64("sigma-x", 8, "blur sigma along X")
		sigmaY = flag.Float64("sigma-y", 8, "blur sigma along Y")
		tile   = flag.String("tile", "decal", "tile mode: clamp, repeat, mirror, decal")
		style  = flag.String("style", "normal", "blur style: normal, solid")
	)
	flag.Parse()

	src, err := loadInput(*input)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}

	opts := []blur.Option{blur.WithTileMode(parseTileMode(*tile))}
	if *style == "solid" {
		opts = append(opts, blur.WithStyle(blur.StyleSolid, nil))
	}
	f := blur.NewFilter(*sigmaX, *sigmaY, opts...)

	renderer := software.New()
	entity := blur.NewEntity()
	result, ok := f.RenderFilter(
		[]blur.FilterInput{blur.NewTextureInput(software.NewTexture(src), blur.Identity())},
		renderer, &entity, blur.Identity(), blur.Rect{}, nil)
	if !ok {
		log.Fatal("Blur filter produced no output")
	}

	bounds := src.Bounds()
	scene := software.NewTexture(image.NewRGBA(bounds))
	if !result.Render(renderer, renderer.NewScenePass(scene)) {
		log.Fatal("Failed to render blur result")
	}

	if err := savePNG(*output, scene.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Blurred image saved to %s (%dx%d, sigma %g/%g)\n",
		*output, bounds.Dx(), bounds.Dy(), *sigmaX, *sigmaY)
}

func loadInput(path string) (*image.RGBA, error) {
	if path == "" {
		return testCard(512, 512), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	rgba := image.NewRGBA(decoded.Bounds())
	for y := rgba.Rect.Min.Y; y < rgba.Rect.Max.Y; y++ {
		for x := rgba.Rect.Min.X; x < rgba.Rect.Max.X; x++ {
			rgba.Set(x, y, decoded.At(x, y))
		}
	}
	return rgba, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func parseTileMode(name string) blur.TileMode {
	switch name {
	case "clamp":
		return blur.TileClamp
	case "repeat":
		return blur.TileRepeat
	case "mirror":
		return blur.TileMirror
	default:
		return blur.TileDecal
	}
}

// testCard draws a few hard-edged shapes so the blur has something to
// soften.
func testCard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, w/8, h/8, w/2, h/2, [4]uint8{230, 60, 60, 255})
	fillRect(img, w/2, h/3, 7*w/8, 2*h/3, [4]uint8{60, 180, 90, 255})
	fillRect(img, w/3, 5*h/8, 2*w/3, 7*h/8, [4]uint8{70, 90, 230, 255})
	return img
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c [4]uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			off := img.PixOffset(x, y)
			copy(img.Pix[off:off+4], c[:])
		}
	}
}
