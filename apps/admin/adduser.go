package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/davalosk/ezu/core/user"
)

// addUser creates a user.User, or sets its password if it already exists.
func (cli *commandLine) addUser(uname, email, pwd string) error {
	ctx := context.Background()

	usr, err := cli.usrSvc.GetByUsername(ctx, uname)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr, err = cli.usrSvc.Create(ctx, user.NewUser{
			Username:        uname,
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwd,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s\t%s\n", usr.ID, usr)
		return nil
	}
	_, err = cli.usrSvc.SetPassword(ctx, usr, user.SetUserPassword{Password: pwd, PasswordConfirm: pwd})
	return err
}

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.SetPassword(ctx, usr, user.SetUserPassword{Password: pwd, PasswordConfirm: pwd})
	return err
}
