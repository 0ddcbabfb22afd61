package main

import (
	"github.com/sirupsen/logrus"

	"lecturequizbot/bot"
	"lecturequizbot/config"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	b, err := bot.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize bot")
	}
	defer b.Close()

	log.Info("bot initialized, starting update loop")
	b.Start()
}
