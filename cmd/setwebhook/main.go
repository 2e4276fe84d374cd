// Command setwebhook registers the bot webhook with the Telegram Bot API,
// either directly (when a bot token is given) or through the backend's
// setup endpoint, and can report the current registration.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/pflag"
)

const webhookPath = "/api/bot/webhook"

// allowedUpdates must stay in sync with the update types the backend handles.
var allowedUpdates = []string{"callback_query", "message"}

func main() {
	backendURL := pflag.String("backend-url", "", "public URL of the backend (e.g. https://shop.example.com)")
	botToken := pflag.String("bot-token", "", "Telegram bot token for direct registration via the Bot API")
	checkStatus := pflag.Bool("check-status", false, "query the current webhook registration after setup")
	pflag.Parse()

	if *backendURL == "" {
		fmt.Fprintln(os.Stderr, "error: --backend-url is required")
		pflag.Usage()
		os.Exit(1)
	}

	base := normalizeBackendURL(*backendURL)

	ok := setupWebhook(base, *botToken)
	if ok || *checkStatus {
		printWebhookStatus(base)
	}
	if !ok {
		os.Exit(1)
	}
}

// normalizeBackendURL strips a trailing slash and a trailing /api segment,
// so both the bare host and the API base are accepted.
func normalizeBackendURL(raw string) string {
	base := strings.TrimRight(raw, "/")
	return strings.TrimSuffix(base, "/api")
}

func setupWebhook(base, token string) bool {
	webhookURL := base + webhookPath

	if token != "" {
		fmt.Println("Registering webhook via the Telegram Bot API...")
		fmt.Printf("  webhook url: %s\n", webhookURL)

		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot initialize bot api: %v\n", err)
			return false
		}

		wh, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid webhook url: %v\n", err)
			return false
		}
		wh.AllowedUpdates = allowedUpdates

		if _, err := bot.Request(wh); err != nil {
			fmt.Fprintf(os.Stderr, "error: setWebhook failed: %v\n", err)
			return false
		}

		fmt.Println("Webhook registered.")
		return true
	}

	setupURL := base + webhookPath + "/setup"
	fmt.Println("Registering webhook via the backend...")
	fmt.Printf("  setup endpoint: %s\n", setupURL)

	body, _ := json.Marshal(map[string]string{"url": base})
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(setupURL, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot reach %s: %v\n", setupURL, err)
		return false
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "error: HTTP %d: %s\n", resp.StatusCode, payload)
		return false
	}

	var result struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		fmt.Fprintf(os.Stderr, "error: unexpected response: %s\n", payload)
		return false
	}
	if !result.Success {
		fmt.Fprintf(os.Stderr, "error: %s\n", result.Error)
		return false
	}

	fmt.Printf("Webhook registered: %s\n", result.URL)
	return true
}

func printWebhookStatus(base string) {
	statusURL := base + webhookPath + "/status"
	fmt.Println("Checking webhook status...")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(statusURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot reach %s: %v\n", statusURL, err)
		return
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "error: HTTP %d: %s\n", resp.StatusCode, payload)
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		fmt.Println(string(payload))
		return
	}
	fmt.Println(pretty.String())
}
