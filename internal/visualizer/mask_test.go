package visualizer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func decodeNRGBA(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	out, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		out = image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out.Set(x, y, img.At(x, y))
			}
		}
	}
	return out
}

func TestBinarizeMaskThreshold(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255}) // bright -> white
	src.SetNRGBA(1, 0, color.NRGBA{201, 201, 201, 255}) // just above threshold -> white
	src.SetNRGBA(0, 1, color.NRGBA{200, 200, 200, 255}) // at threshold -> transparent
	src.SetNRGBA(1, 1, color.NRGBA{255, 0, 0, 255})     // colored -> transparent

	out, err := BinarizeMask(encodePNG(t, src), 2, 2)
	if err != nil {
		t.Fatalf("BinarizeMask: %v", err)
	}

	mask := decodeNRGBA(t, out)
	wantOpaque := map[[2]int]bool{
		{0, 0}: true,
		{1, 0}: true,
		{0, 1}: false,
		{1, 1}: false,
	}
	for pos, opaque := range wantOpaque {
		c := mask.NRGBAAt(pos[0], pos[1])
		if opaque && c != (color.NRGBA{255, 255, 255, 255}) {
			t.Fatalf("pixel %v: expected opaque white, got %+v", pos, c)
		}
		if !opaque && c != (color.NRGBA{0, 0, 0, 0}) {
			t.Fatalf("pixel %v: expected transparent, got %+v", pos, c)
		}
	}
}

func TestBinarizeMaskResizesToTarget(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}

	out, err := BinarizeMask(encodePNG(t, src), 3, 5)
	if err != nil {
		t.Fatalf("BinarizeMask: %v", err)
	}

	mask := decodeNRGBA(t, out)
	b := mask.Bounds()
	if b.Dx() != 3 || b.Dy() != 5 {
		t.Fatalf("expected 3x5 mask, got %dx%d", b.Dx(), b.Dy())
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 3; x++ {
			if mask.NRGBAAt(x, y) != (color.NRGBA{255, 255, 255, 255}) {
				t.Fatalf("pixel (%d,%d) not opaque white", x, y)
			}
		}
	}
}

func TestBinarizeMaskIdempotent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				src.SetNRGBA(x, y, color.NRGBA{230, 230, 230, 255})
			} else {
				src.SetNRGBA(x, y, color.NRGBA{40, 40, 40, 255})
			}
		}
	}

	once, err := BinarizeMask(encodePNG(t, src), 4, 4)
	if err != nil {
		t.Fatalf("first BinarizeMask: %v", err)
	}
	twice, err := BinarizeMask(once, 4, 4)
	if err != nil {
		t.Fatalf("second BinarizeMask: %v", err)
	}

	a, b := decodeNRGBA(t, once), decodeNRGBA(t, twice)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) changed on re-binarization: %+v vs %+v",
					x, y, a.NRGBAAt(x, y), b.NRGBAAt(x, y))
			}
		}
	}
}

func TestBinarizeMaskRejectsGarbage(t *testing.T) {
	if _, err := BinarizeMask([]byte("not an image"), 4, 4); err == nil {
		t.Fatalf("expected decode error")
	}
}
