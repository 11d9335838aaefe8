package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/tundavala/escola/core"
	"github.com/tundavala/escola/core/user"
	logsvc "github.com/tundavala/escola/services/logger"
)

func main() {
	conf := core.NewConfig()

	zapLogger, err := logsvc.NewZapLogger(conf, "ADMIN")
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	logger := zapLogger.Sugar()

	validate := validator.New()
	translators := core.NewTranslators()
	core.InitValidators(validate, translators)
	user.InitValidators(validate, translators)

	// start CLI
	cli := commandLine{
		out:         os.Stdout,
		validate:    validate,
		translators: translators,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Errorf("\nerror: %s\n", err)
		}
		_ = logger.Sync()
		os.Exit(1)
	}
}
