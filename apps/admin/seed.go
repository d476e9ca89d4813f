package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lvillarreal/educrm/core"
	"github.com/lvillarreal/educrm/core/user"
)

// seed creates or refreshes the bootstrap accounts. Credentials come from the
// configuration; an account with no configured email and password is skipped.
func (cli *commandLine) seed() error {
	s := cli.conf.Seed
	if err := cli.seedAccount(s.SuperadminEmail, s.SuperadminName, s.SuperadminPassword, user.RoleSuperadmin); err != nil {
		return err
	}
	return cli.seedAccount(s.AdminEmail, s.AdminName, s.AdminPassword, user.RoleAdmin)
}

func (cli *commandLine) seedAccount(email, name, pwd string, role user.Role) error {
	email = core.CleanString(email)
	if email == "" || pwd == "" {
		fmt.Printf("skipping %s account: no credentials configured\n", role)
		return nil
	}

	ctx := context.Background()
	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return err
		}
		usr = user.User{
			Email:     email,
			Name:      name,
			Role:      role,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err = usr.SetPassword(pwd); err != nil {
			return err
		}
		if _, err = cli.usrRepo.CreateUser(ctx, usr); err != nil {
			return err
		}
		fmt.Printf("created %s account %s\n", role, email)
		return nil
	}

	usr.Name = name
	usr.Role = role
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	active := true
	if _, err = cli.usrRepo.UpdateUser(ctx, usr, &active); err != nil {
		return err
	}
	fmt.Printf("updated %s account %s\n", role, email)
	return nil
}
