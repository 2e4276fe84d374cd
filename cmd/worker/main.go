package main

import (
	"github.com/ilindan-dev/order-notifier/internal/app"
	"go.uber.org/fx"
)

// main is the entry point for the notification worker application.
func main() {
	fx.New(app.WorkerModule).Run()
}
