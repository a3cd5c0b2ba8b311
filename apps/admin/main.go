package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
	"github.com/davalosk/ezu/services/logger"
	"github.com/davalosk/ezu/storage/database"
	"github.com/davalosk/ezu/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZapLogger(conf.Log)
	if err != nil {
		panic(err)
	}
	logger := logsvc.NewRollbarLogger(zl.Named("admin"), conf)
	defer logger.Sync()

	// set up validators
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	courseinfo.InitValidators(validate, translator)

	// set up DB
	if err = database.CreateIfNotExist(conf); err != nil {
		logger.Fatal("creating database", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	// start CLI
	usrRepo := sqlxrepos.NewUserRepository(db)
	cli := commandLine{
		db:     db.DB,
		usrSvc: user.NewService(usrRepo, validate, translator),
		ciSvc:  courseinfo.NewService(sqlxrepos.NewCourseInfoRepository(db), validate, translator, logger),
		out:    os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintln(os.Stderr, "error:", err)
			logger.Debug("admin command failed", err, map[string]interface{}{"args": os.Args[1:]})
		}
		logger.Sync()
		os.Exit(1)
	}
}
