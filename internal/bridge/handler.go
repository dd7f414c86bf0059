package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nhle/maildraft/internal/compose"
	"github.com/nhle/maildraft/internal/draft"
	"github.com/nhle/maildraft/internal/log"
	"github.com/nhle/maildraft/internal/model"
	"github.com/nhle/maildraft/internal/store"
)

// Composer is the subset of compose.Composer the bridge serves.
type Composer interface {
	Open(ctx context.Context, p *model.DraftProperties) (*compose.Result, error)
	HasAccount(app string) bool
	HasClient(ctx context.Context, app string) bool
	Settings() *compose.Settings
}

// Handler serves the draft encoding endpoints.
type Handler struct {
	composer Composer
	history  store.Store
}

// NewHandler creates a handler. history may be nil, which disables the
// launch history endpoints.
func NewHandler(composer Composer, history store.Store) *Handler {
	return &Handler{composer: composer, history: history}
}

type plainTextRequest struct {
	Markup        string `json:"markup"`
	URIDelimiting bool   `json:"uriDelimiting"`
}

type plainTextResponse struct {
	Text *string `json:"text"`
}

type uriResponse struct {
	URI         string `json:"uri"`
	ContentType string `json:"contentType"`
}

type emlResponse struct {
	Text        string `json:"text"`
	ContentType string `json:"contentType"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// Defaults returns the default draft properties.
// Endpoint: GET /v1/defaults
func (h *Handler) Defaults(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.composer.Settings().Merge(nil))
}

// PlainText flattens HTML markup to plain text.
// Endpoint: POST /v1/plaintext
func (h *Handler) PlainText(c *fiber.Ctx) error {
	var req plainTextRequest
	if err := decodeBody(c, &req); err != nil {
		return handleValidationError(c, err.Error())
	}

	var resp plainTextResponse
	if text, ok := draft.ToPlainText(req.Markup, req.URIDelimiting); ok {
		resp.Text = &text
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// Mailto encodes a draft as a mailto URI.
// Endpoint: POST /v1/mailto?contentType=true
func (h *Handler) Mailto(c *fiber.Ctx) error {
	props, err := h.decodeDraft(c)
	if err != nil {
		return handleValidationError(c, err.Error())
	}

	handle := draft.MailtoURI(&props, c.QueryBool("contentType", false))
	defer handle.Close()

	return c.Status(http.StatusOK).JSON(uriResponse{URI: handle.URI, ContentType: handle.ContentType})
}

// EML encodes a draft as an EML text. Clients that accept
// message/rfc822 get the raw text.
// Endpoint: POST /v1/eml
func (h *Handler) EML(c *fiber.Ctx) error {
	props, err := h.decodeDraft(c)
	if err != nil {
		return handleValidationError(c, err.Error())
	}

	handle := draft.EMLContent(&props)
	defer handle.Close()

	if strings.Contains(c.Get(fiber.HeaderAccept), draft.ContentTypeEML) {
		c.Set(fiber.HeaderContentType, draft.ContentTypeEML)
		return c.Status(http.StatusOK).SendString(handle.Text)
	}
	return c.Status(http.StatusOK).JSON(emlResponse{Text: handle.Text, ContentType: handle.ContentType})
}

// Open launches a draft in the user's mail client.
// Endpoint: POST /v1/open
func (h *Handler) Open(c *fiber.Ctx) error {
	var props model.DraftProperties
	if err := decodeBody(c, &props); err != nil {
		return handleValidationError(c, err.Error())
	}

	res, err := h.composer.Open(c.UserContext(), &props)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(res)
}

// Account reports whether app has an account ready to take drafts.
// Endpoint: GET /v1/account?app=...
func (h *Handler) Account(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(availabilityResponse{
		Available: h.composer.HasAccount(c.Query("app")),
	})
}

// Client reports whether a client for app can be launched.
// Endpoint: GET /v1/client?app=...
func (h *Handler) Client(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(availabilityResponse{
		Available: h.composer.HasClient(c.UserContext(), c.Query("app")),
	})
}

// Launches lists recent launches, newest first.
// Endpoint: GET /v1/launches?app=...&limit=...
func (h *Handler) Launches(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	filter := store.LaunchFilter{Limit: limit}
	if app := c.Query("app"); app != "" {
		filter.App = &app
	}

	launches, err := h.history.GetLaunches(c.UserContext(), filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	if launches == nil {
		launches = []model.Launch{}
	}
	return c.Status(http.StatusOK).JSON(launches)
}

// Launch returns a single launch record.
// Endpoint: GET /v1/launches/:id
func (h *Handler) Launch(c *fiber.Ctx) error {
	launch, err := h.history.GetLaunchByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(launch)
}

// decodeDraft reads draft properties from the body and merges them with
// the defaults.
func (h *Handler) decodeDraft(c *fiber.Ctx) (model.DraftProperties, error) {
	var props model.DraftProperties
	if err := decodeBody(c, &props); err != nil {
		return model.DraftProperties{}, err
	}
	merged := h.composer.Settings().Merge(&props)
	log.Dump("bridge draft", merged)
	return merged, nil
}

// decodeBody unmarshals a JSON body. An empty body leaves v unchanged.
func decodeBody(c *fiber.Ctx, v interface{}) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
