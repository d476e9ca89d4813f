package main

import (
	"log"
	"os"

	"github.com/lvillarreal/educrm/core"
	"github.com/lvillarreal/educrm/core/user"
	emailsvc "github.com/lvillarreal/educrm/services/email"
	"github.com/lvillarreal/educrm/storage/database"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	usrRepo := database.NewUserRepository(db)

	// start CLI
	cli := commandLine{
		conf:    conf,
		db:      db,
		usrRepo: usrRepo,
		usrSvc:  user.NewService(usrRepo, emailsvc.NewConsoleService(conf)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
