package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/log"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var logger = log.New("imageio")

// ErrUnknownFormat is returned for output formats that have no encoder
var ErrUnknownFormat = errors.New("imageio: unknown output format")

// Format names an output image encoding
type Format string

const (
	FormatPPM      Format = "ppm"  // Binary P6
	FormatPPMASCII Format = "ppm3" // ASCII P3
	FormatPNG      Format = "png"
	FormatBMP      Format = "bmp"
	FormatTIFF     Format = "tiff"
)

// Formats lists every supported output format
func Formats() []Format {
	return []Format{FormatPPM, FormatPPMASCII, FormatPNG, FormatBMP, FormatTIFF}
}

// ParseFormat validates a format name, case insensitively
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "tif" {
		return FormatTIFF, nil
	}
	for _, f := range Formats() {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img, true)
	case FormatPPMASCII:
		return WritePPM(w, img, false)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save encodes img into a new file at path, creating parent directories
func Save(path string, img image.Image, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	bounds := img.Bounds()
	logger.Debugf("wrote %dx%d %s image to %s", bounds.Dx(), bounds.Dy(), format, path)
	return nil
}

// WritePPM writes img as a netpbm pixmap with maxval 255. Binary selects P6,
// otherwise P3 with one pixel per line. Rows are written top to bottom and
// each row left to right.
func WritePPM(w io.Writer, img image.Image, binary bool) error {
	bounds := img.Bounds()
	magic := "P3"
	if binary {
		magic = "P6"
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := rgb8(img, x, y)
			var err error
			if binary {
				_, err = bw.Write([]byte{r, g, b})
			} else {
				_, err = fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
			}
			if err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// rgb8 returns the 8-bit color of a pixel, reading *image.RGBA directly
func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	if rgba, ok := img.(*image.RGBA); ok {
		c := rgba.RGBAAt(x, y)
		return c.R, c.G, c.B
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
