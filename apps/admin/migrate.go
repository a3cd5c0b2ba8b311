package main

import (
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/davalosk/ezu/storage/database"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	return gooseRunFunc(args[0], cli.db, database.MigrationsDir, args[1:]...)
}
