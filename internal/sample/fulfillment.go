// Package sample holds a small fulfillment webhook used by the mockflow CLI.
package sample

import (
	"fmt"

	"github.com/YevheniiGera/mockflow"
	"github.com/gofiber/fiber/v2"
)

const Path = "/fulfillment"

// NewApp returns a fiber app with the sample fulfillment mounted at Path.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Post(Path, Fulfillment)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World 👋!")
	})

	return app
}

// Fulfillment answers any intent, mentioning the "name" parameter when
// there is one.
func Fulfillment(c *fiber.Ctx) error {
	req := &mockflow.WebhookRequest{}
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	msg := "Ok. I cannot connect you right now"

	if name, ok := req.QueryResult.Parameters["name"]; ok {
		msg = fmt.Sprintf("%v is busy. Talk to me", name)
	}

	return c.JSON(mockflow.TextResponse(msg))
}
