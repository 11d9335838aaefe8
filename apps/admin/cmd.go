package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/tundavala/escola/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out         io.Writer
	validate    *validator.Validate
	translators *core.Translators
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  quote -level LEVEL -mode MODE -students N [-early] - print a tuition quote")
	fmt.Fprintln(cli.out, "  hashpassword -username USERNAME - hash a password for the admin account")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	quoteCmd := flag.NewFlagSet("quote", flag.ContinueOnError)
	quoteCmd.SetOutput(cli.out)
	quoteLevel := quoteCmd.String("level", "", "Education level: primario, secundario or intercambio.")
	quoteMode := quoteCmd.String("mode", "mensal", "Payment mode: mensal, trimestral, semestral or anual.")
	quoteStudents := quoteCmd.Int("students", 1, "Number of students (1-10).")
	quoteEarly := quoteCmd.Bool("early", false, "Apply the early payment discount.")

	hashPasswordCmd := flag.NewFlagSet("hashpassword", flag.ContinueOnError)
	hashPasswordCmd.SetOutput(cli.out)
	hashPasswordUname := hashPasswordCmd.String("username", "", "The admin's username. The password will be prompted next.")

	switch args[1] {
	case "quote":
		if err := quoteCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *quoteLevel == "" {
			quoteCmd.Usage()
			return errHelp
		}
		return cli.quote(*quoteLevel, *quoteMode, *quoteStudents, *quoteEarly)
	case "hashpassword":
		if err := hashPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *hashPasswordUname == "" {
			hashPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.prompt("Enter password:")
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			hashPasswordCmd.Usage()
			return errHelp
		}
		pwdConfirm, err := cli.prompt("Confirm password:")
		if err != nil {
			return err
		}
		return cli.hashPassword(*hashPasswordUname, pwd, pwdConfirm)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) prompt(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	return string(pwd), err
}

// describe turns validation errors into one readable line per field.
func (cli *commandLine) describe(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	msg := "invalid data:"
	for _, vErr := range vErrs {
		msg += fmt.Sprintf("\n  %s: %s", vErr.Field(), vErr.Translate(cli.translators.Default()))
	}
	return errors.New(msg)
}
