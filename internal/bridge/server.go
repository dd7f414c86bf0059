// Package bridge exposes the draft encoder over local HTTP so other
// processes can build and open drafts.
package bridge

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/nhle/maildraft/internal/log"
)

// NewApp builds the fiber app with all routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "maildraft",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger)

	v1 := app.Group("/v1")
	v1.Get("/defaults", h.Defaults)
	v1.Post("/plaintext", h.PlainText)
	v1.Post("/mailto", h.Mailto)
	v1.Post("/eml", h.EML)
	v1.Post("/open", h.Open)
	v1.Get("/account", h.Account)
	v1.Get("/client", h.Client)

	if h.history != nil {
		v1.Get("/launches", h.Launches)
		v1.Get("/launches/:id", h.Launch)
	}

	return app
}

// requestLogger tags the request context with the request ID and logs
// each request once it completes.
func requestLogger(c *fiber.Ctx) error {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	ctx := log.WithRequestID(c.UserContext(), id)
	c.SetUserContext(ctx)

	start := time.Now()
	err := c.Next()
	log.InfoWithContext(ctx, "%s %s -> %d (%s)",
		c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start).Round(time.Millisecond))
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(ErrorResponse{Code: errorCode(code), Message: err.Error()})
}

// errorCode maps an HTTP status from fiber onto the API error codes.
func errorCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= 400 && status < 500:
		return CodeInvalidRequest
	default:
		return CodeInternalError
	}
}

// Serve listens on addr until ctx is cancelled, then shuts the app down.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("bridge listening on %s", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			return err
		}
		return <-errCh
	}
}
