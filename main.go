package main

import (
	"ChineseBee/bot"
	"ChineseBee/bot/chat/telegram"
	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflows/browser"
	"ChineseBee/bot/workflows/drill"
	"ChineseBee/bot/workflows/lookup"
	"ChineseBee/bot/workflows/mainmenu"
	"ChineseBee/bot/workflows/tutorial"
	"ChineseBee/internal/config"
	"ChineseBee/internal/database"
	"ChineseBee/internal/http-server/api"
	"ChineseBee/internal/http-server/handlers/health"
	"ChineseBee/internal/lib/logger"
	"ChineseBee/internal/lib/sl"
	"ChineseBee/internal/service/vocab"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting chinesebee", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	if !conf.Telegram.Enabled {
		lg.Warn("telegram bot disabled")
		if conf.Listen.Enabled {
			serve(conf, lg, nil, nil)
		}
		return
	}

	userBot, err := bot.NewUserBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
	if err != nil {
		lg.Error("failed to initialize telegram bot", sl.Err(err))
		return
	}
	lg = logger.SetupTelegramHandler(lg, userBot, slog.LevelError)
	lg.With(
		slog.String("bot_name", conf.Telegram.BotName),
	).Info("telegram bot initialized")

	vocabService := vocab.NewVocabService(conf, lg)
	lg.With(
		slog.String("url", conf.Backend.BaseURL),
	).Info("vocab service initialized")

	var sessions workflow.SessionStore = workflow.NewMemorySessionStore()
	var storage health.Pinger
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		sessions = workflow.NewMongoSessionStorage(db)
		storage = db
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo session storage initialized")
	}

	content, err := tutorial.LoadContent(conf.Tutorial.ContentPath)
	if err != nil {
		lg.Error("tutorial content", sl.Err(err))
		return
	}

	renderer := workflow.NewRenderer(telegram.NewMessenger(userBot.API(), conf.ImgPath), lg)
	router := workflow.NewRouter(renderer, sessions, lg)
	router.RegisterWorkflow(lookup.NewLookupWorkflow(vocabService, renderer, sessions, lg))
	router.RegisterWorkflow(browser.NewBrowserWorkflow(vocabService, renderer, sessions, lg))
	router.RegisterWorkflow(drill.NewDrillWorkflow(vocabService, renderer, lg))
	router.RegisterWorkflow(tutorial.NewTutorialWorkflow(content, renderer, lg))
	router.RegisterWorkflow(mainmenu.NewMainMenuWorkflow(content.Help, conf.Dictation.URL, renderer, sessions, lg).
		WithLinkSecret(conf.Dictation.Secret, conf.Dictation.LinkTTL))

	userBot.SetRouter(router)

	go func() {
		if err := userBot.Start(); err != nil {
			lg.Error("telegram bot error", sl.Err(err))
		}
	}()

	serve(conf, lg, router, storage)
}

// serve blocks on the api server when it is enabled, otherwise forever.
func serve(conf *config.Config, lg *slog.Logger, router api.Handler, storage health.Pinger) {
	if !conf.Listen.Enabled {
		select {}
	}

	// *** blocking start with http server ***
	err := api.New(conf, lg, router, storage)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
