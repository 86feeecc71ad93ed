package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/badge"
	"github.com/trezcool/masomo-lms/core/progress"
	emailsvc "github.com/trezcool/masomo-lms/services/email"
	logsvc "github.com/trezcool/masomo-lms/services/logger"
	"github.com/trezcool/masomo-lms/storage/database"
	sqlxrepos "github.com/trezcool/masomo-lms/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal("creating database", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	repos := sqlxrepos.NewRepositories(db)

	// set up services
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	badge.InitValidators(validate, translator)

	progressSvc := progress.NewService(repos)
	counters := badge.NewCounters(badge.CounterSources{
		Enrollments:  repos,
		Submissions:  repos,
		Progress:     progressSvc,
		Certificates: repos,
	})
	badgeSvc := badge.NewService(badge.ServiceDeps{
		Badges:        repos,
		StudentBadges: repos,
		Users:         repos,
		Engine:        badge.NewEngine(counters, repos, repos, logger, conf.Badges.Concurrency),
		Mail:          emailsvc.NewConsoleService(conf, logger),
		Validate:      validate,
		Logger:        logger,
	})

	// start CLI
	cli := commandLine{
		conf:     conf,
		db:       db.DB,
		badgeSvc: badgeSvc,
		users:    repos,
		out:      os.Stdout,
		outFd:    int(os.Stdout.Fd()),
	}
	err = cli.run(os.Args)
	if cErr := db.Close(); cErr != nil {
		logger.Error("closing database", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
