package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	AverageSamples  float64       // Average samples per pixel
	SamplesPerPixel int           // Samples requested per pixel
	Tiles           int           // Number of tiles the image was split into
	RenderTime      time.Duration // Wall clock time of the render
	AverageLuma     float64       // Mean luminance of the tone-mapped frame, set once it is written
	Workers         []WorkerStats // One entry per worker, ordered by ID
}

// WorkerStats records how much of the frame one worker rendered
type WorkerStats struct {
	ID         int
	Tiles      int
	Pixels     int
	Samples    int
	RenderTime time.Duration // Time spent inside tiles, excluding queue waits
}

// FramePercent returns the share of totalPixels this worker rendered
func (ws WorkerStats) FramePercent(totalPixels int) float64 {
	if totalPixels == 0 {
		return 0
	}
	return 100 * float64(ws.Pixels) / float64(totalPixels)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the unweighted mean of the samples taken so far
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an 8-bit
// image with channels read as values in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255).Luminance()
		}
	}
	return total / float64(pixels)
}
