package main

import (
	"os"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	scenesDirFlag := cli.StringFlag{
		Name:  "scenes-dir",
		Value: "scenes",
		Usage: "directory searched for json:<name> scene documents",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render scenes using recursive Whitted ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene, a json:<name> document from the scenes directory or
the scene document at the given path. Flags override the settings stored in
the scene; omitted flags keep them.`,
			ArgsUsage: "[scene]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "scene id or path, used when no argument is given",
				},
				scenesDirFlag,
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum recursion depth",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "seed for pixel jitter and lens sampling",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Usage: "camera exposure for tone-mapping",
				},
				cli.StringFlag{
					Name:  "tonemap",
					Usage: "tone mapping operator (reinhard or clamp)",
				},
				cli.StringFlag{
					Name:  "mode",
					Usage: "render mode (phong or binary)",
				},
				cli.BoolFlag{
					Name:  "no-bvh",
					Usage: "intersect with a linear scan instead of a BVH",
				},
				cli.StringFlag{
					Name:  "bvh-split",
					Usage: "BVH construction strategy (array-order or longest-axis)",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of render workers (default: number of CPUs)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Usage: "tile edge length in pixels",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.StringFlag{
					Name:  "format, f",
					Usage: "output format (ppm, ppm3, png, bmp, tiff); inferred from --out when omitted",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and scene documents",
			Flags:  []cli.Flag{scenesDirFlag},
			Action: cmd.ListScenes,
		},
		{
			Name:      "info",
			Usage:     "display scene contents and BVH statistics",
			ArgsUsage: "scene",
			Flags:     []cli.Flag{scenesDirFlag},
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "serve",
			Usage: "serve the rendering API over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
				scenesDirFlag,
			},
			Action: cmd.Serve,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("whitted").Error(err)
		os.Exit(1)
	}
}
