package server

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/shouni/gemini-poem-kit/internal/config"
	"github.com/shouni/gemini-poem-kit/pkg/generator"
	"github.com/shouni/gemini-poem-kit/pkg/imgutil"
)

type Api struct {
	server         *fiber.App
	poems          generator.PoemService
	policy         imgutil.UploadPolicy
	defaultStyle   string
	port           string
	allowedOrigins string
}

// NewApi はルーティングとミドルウェアを登録済みの Api を返します。
func NewApi(poems generator.PoemService, cfg config.Config) (*Api, error) {
	if poems == nil {
		return nil, fmt.Errorf("poems is required")
	}
	if cfg.API.AllowedOrigins == "" {
		cfg.API.AllowedOrigins = "*"
	}

	a := &Api{
		server: fiber.New(fiber.Config{
			AppName:               "photopoet",
			BodyLimit:             cfg.API.BodyLimit,
			DisableStartupMessage: true,
		}),
		poems:          poems,
		policy:         cfg.UploadPolicy(),
		defaultStyle:   cfg.DefaultStyle(),
		port:           cfg.API.Port,
		allowedOrigins: cfg.API.AllowedOrigins,
	}
	a.setup()
	return a, nil
}

// App はテストや組み込み用に fiber.App を返します。
func (a *Api) App() *fiber.App {
	return a.server
}

// Start はサーバーを起動し、停止するまでブロックします。
func (a *Api) Start() error {
	log.With("component", "api").Info("listening", "port", a.port, "origins", a.allowedOrigins)
	return a.server.Listen(fmt.Sprint(":", a.port))
}

// Shutdown は処理中のリクエストを待ってからサーバーを停止します。
func (a *Api) Shutdown(ctx context.Context) error {
	return a.server.ShutdownWithContext(ctx)
}

func (a *Api) setup() {
	allowCredentials := a.allowedOrigins != "*"

	a.server.Use(recover.New())
	a.server.Use(RequestLogger())
	a.server.Use(cors.New(cors.Config{
		AllowOrigins:     a.allowedOrigins,
		AllowCredentials: allowCredentials,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization,Accept,Origin",
		ExposeHeaders:    "X-Request-Id",
	}))

	a.addRoutes()
}

func (a *Api) addRoutes() {
	a.server.Add("GET", "/health", a.Health())
	a.server.Add("POST", "/poems", a.GeneratePoem())
	a.server.Add("POST", "/poems/length", a.RegenerateWithLength())
	a.server.Add("POST", "/poems/tone", a.RegenerateWithTone())
}
