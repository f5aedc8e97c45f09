package visualizer

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// maskThreshold is the per-channel brightness above which a pixel counts
// as editable.
const maskThreshold = 200

// BinarizeMask reconciles a provider-generated mask with the source photo's
// geometry: resize to width x height with nearest-neighbor (mask content must
// stay binary, not blended), then threshold every pixel to either fully
// opaque white or fully transparent. The operation is idempotent.
func BinarizeMask(data []byte, width, height int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mask: %w", err)
	}

	resized := imaging.Resize(src, width, height, imaging.NearestNeighbor)

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := resized.PixOffset(x, y)
			r, g, b := resized.Pix[i], resized.Pix[i+1], resized.Pix[i+2]

			o := out.PixOffset(x, y)
			if r > maskThreshold && g > maskThreshold && b > maskThreshold {
				out.Pix[o], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = 255, 255, 255, 255
			} else {
				out.Pix[o], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = 0, 0, 0, 0
			}
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode mask: %w", err)
	}
	return buf.Bytes(), nil
}
