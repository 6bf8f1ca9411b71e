package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"krishisahay/internal/assistant"
	"krishisahay/internal/lang"
	"krishisahay/internal/market"
)

type handler struct {
	svc    *assistant.Service
	logger *zap.Logger
}

func newHandler(svc *assistant.Service, logger *zap.Logger) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &handler{svc: svc, logger: logger}
}

// Health reports service readiness and which retrieval paths are live.
func (h *handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"corpus_size":  h.svc.CorpusSize(),
		"vector_ready": h.svc.VectorReady(),
		"online_ready": h.svc.OnlineReady(),
	})
}

type askRequest struct {
	Query    string `json:"query"`
	TopK     int    `json:"top_k"`
	Language string `json:"language"`
	Farmer   string `json:"farmer_name"`
	Location string `json:"location"`
	Online   bool   `json:"online"`
}

// Ask answers an agricultural question.
func (h *handler) Ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}
	language := lang.English
	if req.Language == string(lang.Telugu) {
		language = lang.Telugu
	}
	resp := h.svc.Ask(c.Context(), assistant.AskRequest{
		Query:    req.Query,
		TopK:     req.TopK,
		Language: language,
		Farmer:   req.Farmer,
		Location: req.Location,
		Online:   req.Online,
	})
	return c.JSON(resp)
}

// Weather returns the current weather and a farming advisory.
func (h *handler) Weather(c *fiber.Ctx) error {
	location := c.Params("location")
	report, advice, err := h.svc.Weather(c.Context(), location, c.Query("farmer_name"))
	if err != nil {
		h.logger.Warn("weather lookup failed", zap.String("location", location), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    "weather data unavailable",
			"advisory": advice,
		})
	}
	return c.JSON(fiber.Map{"weather": report, "advisory": advice})
}

// MarketPrices returns mandi quotes for a state and crop.
func (h *handler) MarketPrices(c *fiber.Ctx) error {
	state := c.Query("state")
	crop := c.Query("crop")
	if state == "" || crop == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "state and crop are required"})
	}
	h.svc.LogMarketQuery(c.Query("farmer_name"), state, crop)
	return c.JSON(fiber.Map{
		"state":  state,
		"crop":   crop,
		"prices": market.Prices(state, crop),
	})
}

// MSP returns the minimum-support-price table.
func (h *handler) MSP(c *fiber.Ctx) error {
	return c.JSON(market.MSP())
}

type knowledgeRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// AddKnowledge appends an ad-hoc Q&A pair to the runtime knowledge store.
func (h *handler) AddKnowledge(c *fiber.Ctx) error {
	var req knowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.svc.AddKnowledge(req.Question, req.Answer, req.Category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "added"})
}

// Dashboard summarizes logged queries for analytics.
func (h *handler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.svc.Dashboard())
}
