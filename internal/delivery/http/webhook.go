package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ilindan-dev/order-notifier/internal/config"
	"github.com/rs/zerolog"
)

// webhookPath is where Telegram delivers bot updates.
const webhookPath = "/api/bot/webhook"

// allowedUpdates is the fixed list of update types the bot subscribes to.
var allowedUpdates = []string{"callback_query", "message"}

// WebhookHandlers owns the bot webhook surface: the inbound update sink
// and the setup/status endpoints the registrar CLI talks to.
type WebhookHandlers struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewWebhookHandlers creates a new instance of WebhookHandlers.
func NewWebhookHandlers(cfg *config.Config, logger *zerolog.Logger) *WebhookHandlers {
	return &WebhookHandlers{
		cfg:    cfg,
		logger: logger.With().Str("layer", "webhook_handler").Logger(),
	}
}

// RegisterRoutes sets up the routing for the bot webhook surface.
func (h *WebhookHandlers) RegisterRoutes(router *gin.Engine) {
	bot := router.Group("/api/bot")
	{
		bot.POST("/webhook", h.ReceiveUpdate)
		bot.POST("/webhook/setup", h.SetupWebhook)
		bot.GET("/webhook/status", h.WebhookStatus)
	}
}

// SetupWebhookRequest optionally overrides the configured base URL.
type SetupWebhookRequest struct {
	URL string `json:"url"`
}

// SetupWebhook registers this backend's inbound endpoint with the
// Telegram Bot API.
func (h *WebhookHandlers) SetupWebhook(c *gin.Context) {
	token := h.cfg.Notifiers.Telegram.BotToken
	if token == "" {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "telegram bot token is not configured"})
		return
	}

	var req SetupWebhookRequest
	// The body is optional; ignore bind errors and fall back to config.
	_ = c.ShouldBindJSON(&req)

	base := req.URL
	if base == "" {
		base = h.cfg.Notifiers.Telegram.WebhookBaseURL
	}
	if base == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no webhook base url configured or provided"})
		return
	}

	webhookURL := strings.TrimRight(base, "/") + webhookPath

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create telegram bot api")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	wh.AllowedUpdates = allowedUpdates

	if _, err := bot.Request(wh); err != nil {
		h.logger.Error().Err(err).Str("url", webhookURL).Msg("setWebhook failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Info().Str("url", webhookURL).Msg("webhook registered")
	c.JSON(http.StatusOK, gin.H{"success": true, "url": webhookURL})
}

// WebhookStatus reports the current webhook registration as seen by the
// Telegram Bot API.
func (h *WebhookHandlers) WebhookStatus(c *gin.Context) {
	token := h.cfg.Notifiers.Telegram.BotToken
	if token == "" {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "telegram bot token is not configured"})
		return
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create telegram bot api")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	info, err := bot.GetWebhookInfo()
	if err != nil {
		h.logger.Error().Err(err).Msg("getWebhookInfo failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// ReceiveUpdate is the inbound sink Telegram delivers updates to.
// Interactive bot behavior lives in the order backend; the notifier only
// acknowledges so registration stays valid.
func (h *WebhookHandlers) ReceiveUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Info().Int("update_id", update.UpdateID).Msg("received telegram update")
	c.Status(http.StatusOK)
}
