package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"fansly-utils/core/snapshot"
	"fansly-utils/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort string

// serveCmd serves the snapshot report over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the snapshot report over HTTP",
	Long: `Starts a local HTTP server exposing the snapshot: the HTML report at /
and the raw snapshot document at /snapshot.json. The snapshot is re-read
per request, so a backup running alongside shows up on refresh.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides configuration)")

	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	port := rt.cfg.Server.Port
	if servePort != "" {
		port = servePort
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We will log our own startup message
	})

	// Logging middleware (zap)
	app.Use(func(c *fiber.Ctx) error {
		rt.log.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			rt.log.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/", func(c *fiber.Ctx) error {
		snap, err := loadFresh(rt)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		var buf bytes.Buffer
		if err := report.Render(&buf, snap); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	app.Get("/snapshot.json", func(c *fiber.Ctx) error {
		snap, err := loadFresh(rt)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		out, err := json.MarshalIndent(snap, "", "    ")
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(out)
	})

	go func() {
		rt.log.Info("Starting server", zap.String("port", port))
		if err := app.Listen(":" + port); err != nil {
			rt.log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	rt.log.Info("Shutting down server...")
	return app.Shutdown()
}

func loadFresh(rt *runtime) (*snapshot.Snapshot, error) {
	loaded, err := rt.loadSnapshot()
	if err != nil {
		return nil, err
	}
	return loaded.Snapshot, nil
}
