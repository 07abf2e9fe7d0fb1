package main

import (
	"strings"

	"github.com/benbeisheim/minitchess-backend/internal/config"
	"github.com/benbeisheim/minitchess-backend/internal/controller"
	"github.com/benbeisheim/minitchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/spf13/cobra"
)

func newServeCmd(load func() (config.Config, error)) *cobra.Command {
	var addr string
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket analysis server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if debug {
				log.SetLevel(log.LevelDebug)
			} else {
				log.SetLevel(log.LevelInfo)
			}

			ec, err := cfg.Engine.Build()
			if err != nil {
				return err
			}
			pool, err := service.NewEnginePool(ec, cfg.Engine.Workers)
			if err != nil {
				return err
			}
			defer pool.Close()

			// Initialize services
			analysisService := service.NewAnalysisService(pool, cfg.Engine.AcquireTimeout())
			app := newApp(cfg.Server, analysisService)

			errCh := make(chan error, 1)
			go func() {
				log.Infof("listening on %s with %d engines at depth %d", cfg.Server.Addr, pool.Size(), ec.Depth)
				errCh <- app.Listen(cfg.Server.Addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				log.Info("shutting down")
				return app.Shutdown()
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	cmd.Flags().BoolVar(&debug, "debug", false, "log every move and search")
	return cmd
}

func newApp(cfg config.ServerConfig, analysisService *service.AnalysisService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "minitchess",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.AllowOrigins != "*",
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestID} ${status} ${latency} ${method} ${path}\n",
	}))

	// Initialize controllers
	analysisController := controller.NewAnalysisController(analysisService)
	wsController := controller.NewWebSocketController(analysisService)

	controller.SetupRoutes(app, analysisController, wsController, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         splitOrigins(cfg.AllowOrigins),
	})
	return app
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
