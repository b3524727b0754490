package utils

import (
	"github.com/cse-dept/cms-api/database"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler is a handler that needs the database store
type StoreHandler func(c *fiber.Ctx, store database.Storage) error

// MakeHTTPHandleFunc binds store to handler. Errors go to the app error handler.
func MakeHTTPHandleFunc(handler StoreHandler, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(c, store)
	}
}
