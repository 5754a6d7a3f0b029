package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"remindbot/internal/app"
	"remindbot/internal/app/deps"
	"remindbot/internal/app/services"
	"remindbot/internal/telegram"
	"syscall"
	"time"

	dl "remindbot/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	// Triggers are re-armed before the bot accepts commands, so a command
	// can never observe a half-reloaded schedule.
	if err := services.Scheduler.Start(context.Background()); err != nil {
		deps.Logger.Error(context.Background(), "Could not start the scheduler.", dl.Entry("err", err))
		panic(err)
	}

	handlers := telegram.NewHandlers(
		deps.Logger,
		services.RegisterUser,
		services.CreateReminder,
		services.DeleteReminder,
		services.ListUserReminders,
		deps.Now,
	)
	bot, err := telegram.NewBot(
		deps.Config.TelegramToken,
		deps.Config.TelegramPollerTimeout,
		deps.Logger,
		handlers,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create the Telegram bot.", dl.Entry("err", err))
		panic(err)
	}
	go bot.Start()

	httpServer := app.InitHttpServer(deps)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, bot, services, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("timezone", deps.Config.Timezone),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	bot *telegram.Bot,
	services *services.Services,
	deps *deps.Deps,
	shutDownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	bot.Stop()
	services.Scheduler.Stop()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "Service has shut down.")
}
