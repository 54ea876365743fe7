package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding

	"golang.org/x/image/bmp"

	stego "github.com/pixelveil/stego-go"
)

// Decode reads any registered image format (PNG, JPEG, GIF, BMP) from r and
// converts it to an RGBA pixel buffer.
func Decode(r io.Reader) (*stego.PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeFile reads the image at path into an RGBA pixel buffer.
func DecodeFile(path string) (*stego.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// FromImage converts any image to a four-channel RGBA pixel buffer.
func FromImage(img image.Image) *stego.PixelBuffer {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	// An RGBA anchored at the origin has Stride == 4*width, so Pix is
	// exactly the interleaved layout PixelBuffer expects.
	return &stego.PixelBuffer{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: 4,
		Pix:      rgba.Pix,
	}
}

// ToImage converts a pixel buffer back to an image. The buffer's storage is
// shared with the returned image for four-channel buffers; three-channel
// buffers are expanded with opaque alpha.
func ToImage(buf *stego.PixelBuffer) (image.Image, error) {
	if buf == nil || buf.Pix == nil {
		return nil, fmt.Errorf("nil pixel buffer")
	}

	switch buf.Channels {
	case 4:
		return &image.RGBA{
			Pix:    buf.Pix,
			Stride: 4 * buf.Width,
			Rect:   image.Rect(0, 0, buf.Width, buf.Height),
		}, nil
	case 3:
		rgba := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
		for p := 0; p < buf.Width*buf.Height; p++ {
			rgba.Pix[p*4+0] = buf.Pix[p*3+0]
			rgba.Pix[p*4+1] = buf.Pix[p*3+1]
			rgba.Pix[p*4+2] = buf.Pix[p*3+2]
			rgba.Pix[p*4+3] = 0xff
		}
		return rgba, nil
	default:
		return nil, fmt.Errorf("unsupported channel count %d", buf.Channels)
	}
}

// EncodePNG writes the buffer to w as PNG.
func EncodePNG(w io.Writer, buf *stego.PixelBuffer) error {
	img, err := ToImage(buf)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

// EncodeBMP writes the buffer to w as BMP.
func EncodeBMP(w io.Writer, buf *stego.PixelBuffer) error {
	img, err := ToImage(buf)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encode BMP: %w", err)
	}
	return nil
}

// WriteFile writes the buffer to path, choosing the format by extension.
// Only lossless formats are accepted: .png and .bmp. Lossy formats such as
// JPEG re-quantize pixel values and would destroy an embedded payload, so
// they are refused rather than silently corrupting the output.
func WriteFile(path string, buf *stego.PixelBuffer) error {
	var encode func(io.Writer, *stego.PixelBuffer) error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = EncodePNG
	case ".bmp":
		encode = EncodeBMP
	case ".jpg", ".jpeg":
		return fmt.Errorf("refusing lossy output format %s: use .png or .bmp", ext)
	default:
		return fmt.Errorf("unsupported output format %q: use .png or .bmp", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := encode(f, buf); err != nil {
		return err
	}
	return f.Close()
}
