package main

import (
	"fmt"

	"github.com/tundavala/escola/core/user"
)

// hashPassword applies the password policy and prints a bcrypt hash usable as `admin.passwordHash`.
func (cli *commandLine) hashPassword(uname, pwd, pwdConfirm string) error {
	nu := user.NewUser{Username: uname, Password: pwd, PasswordConfirm: pwdConfirm}
	if err := nu.Validate(cli.validate); err != nil {
		return cli.describe(err)
	}

	var usr user.User
	if err := usr.SetPassword(nu.Password); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(usr.PasswordHash))
	return nil
}
