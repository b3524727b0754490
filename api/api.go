package api

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/cse-dept/cms-api/config"
	"github.com/cse-dept/cms-api/services/reporting"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

const appName = "CSE Department CMS API"

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewAPIServer creates the fiber app. reporter may be nil.
func NewAPIServer(listenAddress string, env *config.EnvironmentVariable, reporter reporting.Reporter) *APIServer {
	var report func(c *fiber.Ctx, err error)
	if reporter != nil {
		report = func(c *fiber.Ctx, err error) {
			reporter.Report(err, map[string]interface{}{
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.Locals("requestid"),
			})
		}
	}

	app := fiber.New(fiber.Config{
		AppName:     appName,
		BodyLimit:   env.MaxUploadBytes(),
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: response.ErrorHandler(response.ErrorHandlerConfig{
			Production: env.IsProduction(),
			Report:     report,
		}),
	})

	return &APIServer{
		app:           app,
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
