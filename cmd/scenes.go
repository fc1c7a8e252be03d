package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes and the scene documents found in
// the scenes directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("scenes-dir"))
	if err != nil {
		return err
	}

	return writeSceneTable(ctx.App.Writer, response)
}

func writeSceneTable(w io.Writer, response scene.ScenesResponse) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Type", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.Name, group.Name, info.Type, info.Description})
		}
	}

	table.Render()
	return nil
}

// ShowSceneInfo loads a scene and displays its contents and acceleration
// structure statistics.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene id or scene file argument")
	}

	sc, err := scene.Load(ctx.Args().First(), ctx.String("scenes-dir"))
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sceneStats(sc))
	return nil
}

// sceneStats renders a table of primitive counts and BVH statistics
func sceneStats(sc *scene.Scene) string {
	counts := make(map[string]int)
	for _, prim := range sc.Primitives {
		counts[primitiveKind(prim)]++
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", sc.Camera.Width(), sc.Camera.Height())})
	table.Append([]string{"Focus distance", fmt.Sprintf("%.2f", sc.Camera.FocusDistance())})
	table.Append([]string{"Render mode", string(sc.Mode)})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", sc.SamplingConfig.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", sc.SamplingConfig.MaxDepth)})
	table.Append([]string{"Lights", fmt.Sprintf("%d", len(sc.Lights))})
	for _, kind := range kinds {
		table.Append([]string{kind, fmt.Sprintf("%d", counts[kind])})
	}

	if len(sc.Primitives) > 0 {
		stats := geometry.NewBVH(sc.Primitives, sc.SplitStrategy).Stats()
		table.Append([]string{"BVH strategy", sc.SplitStrategy.String()})
		table.Append([]string{"BVH nodes", fmt.Sprintf("%d (%d leaves)", stats.TotalNodes, stats.LeafNodes)})
		table.Append([]string{"BVH depth", fmt.Sprintf("max %d, avg %.1f", stats.MaxDepth, stats.AvgDepth)})
	}

	table.Render()
	return buf.String()
}

func primitiveKind(prim geometry.Primitive) string {
	switch prim.(type) {
	case *geometry.Sphere:
		return "Spheres"
	case *geometry.Cylinder:
		return "Cylinders"
	case *geometry.Triangle:
		return "Triangles"
	default:
		return "Other primitives"
	}
}
