package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"webconfig/internal/config"
	"webconfig/internal/logs"
	"webconfig/internal/server"
	"webconfig/internal/util"
	"webconfig/internal/webconfig"
)

func main() {
	fs := afero.NewOsFs()

	// Initialise configuration.
	if err := config.InitConfig(fs, "./config"); err != nil {
		logrus.Fatal(err)
	}

	identity := config.Identity()
	if identity == "" {
		identity = util.HardwareIdentity()
	}

	// Initialise logging.
	logs.InitLogrus(config.LogLevel(), config.LogEndpoint(), identity)
	config.OnSettingsChange(func() {
		logs.SetLevel(config.LogLevel())
	})

	// Build the parameter set and load the stored values.
	schemaText, err := config.LoadSchema(fs)
	if err != nil {
		logrus.Error(err)
	}
	cfg, err := webconfig.New(fs, config.ValuesFile(), schemaText, identity, config.Labels())
	if err != nil {
		logrus.Warn("The parameter description was not fully usable: ", err)
	}
	if err := cfg.ReadConfig(); err != nil {
		logrus.Error("There was an error reading the stored configuration: ", err)
	}

	watcher, err := config.WatchSchema(config.SchemaFile(), func() {
		reloadSchema(fs, cfg)
	})
	if err != nil {
		logrus.Error(err)
	} else {
		defer watcher.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	restart := make(chan struct{}, 1)
	router := server.NewRouter(cfg, func() {
		select {
		case restart <- struct{}{}:
		default:
		}
	})

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-restart:
			cancel()
		case <-serveCtx.Done():
		}
	}()

	// Run server to handle incoming requests.
	if err := server.RunServer(serveCtx, config.ListenAddress(), router); err != nil {
		logrus.Fatal(err)
	}

	// Without a signal the server only stops when a restart was requested.
	if ctx.Err() == nil {
		logrus.Info("Restarting.")
		if err := util.Restart(); err != nil {
			logrus.Fatal("There was an error restarting: ", err)
		}
	}
}

func reloadSchema(fs afero.Fs, cfg *webconfig.WebConfig) {
	schemaText, err := config.LoadSchema(fs)
	if err != nil {
		logrus.Error(err)
		return
	}
	if err := cfg.SetDescription(schemaText); err != nil {
		logrus.Warn("The parameter description was not fully usable: ", err)
	}
	if err := cfg.ReadConfig(); err != nil {
		logrus.Error("There was an error reading the stored configuration: ", err)
	}
}
