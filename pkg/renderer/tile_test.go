package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"partial edge tiles", 70, 45, 32, 6},
		{"tile larger than image", 10, 5, 32, 1},
		{"default tile size", 64, 32, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}

			for i, count := range covered {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestFramebuffer_ToRGBAKeepsOrientation(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Set(2, 0, core.NewVec3(1, 1, 1))
	fb.Set(0, 1, core.NewVec3(1, 0, 0))

	img := fb.ToRGBA(NewClampToneMapper(1))
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", img.Bounds())
	}

	if c := img.RGBAAt(2, 0); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("Expected white at top-right, got %v", c)
	}
	if c := img.RGBAAt(0, 1); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("Expected red at bottom-left, got %v", c)
	}
	if c := img.RGBAAt(0, 0); c.R != 0 || c.A != 255 {
		t.Errorf("Expected opaque black at top-left, got %v", c)
	}
}
