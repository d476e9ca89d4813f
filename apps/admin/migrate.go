package main

import (
	"fmt"

	"github.com/lvillarreal/educrm/storage/database"
)

func (cli *commandLine) migrate() error {
	if err := database.Migrate(cli.db); err != nil {
		return err
	}
	fmt.Println("migrations applied")
	return nil
}
