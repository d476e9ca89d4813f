package main

import (
	"context"
	"fmt"

	"github.com/lvillarreal/educrm/core"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	email = core.CleanString(email)
	if err := cli.usrSvc.SetPasswordByEmail(context.Background(), email, pwd); err != nil {
		return err
	}
	fmt.Printf("password updated for %s\n", email)
	return nil
}
