package cmd

import (
	"github.com/df07/go-whitted-raytracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the HTTP rendering API.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	port := ctx.Int("port")
	logger.Noticef("visit http://localhost:%d/api/scenes to list the available scenes", port)

	return server.NewServer(port, ctx.String("scenes-dir")).Start()
}
