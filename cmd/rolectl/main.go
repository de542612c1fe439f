package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/infrastructure/cache"
	"github.com/rafabene/access-admin/internal/infrastructure/config"
	"github.com/rafabene/access-admin/internal/infrastructure/i18n"
	"github.com/rafabene/access-admin/internal/infrastructure/logging"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
	"github.com/rafabene/access-admin/internal/services"
)

const usage = `Usage: rolectl [--site NAME] [--lang LANG] <command> [args]

Commands:
  duplicate-role SOURCE NEW [--no-permissions]   duplicate a role with its permissions
  list-roles [--with-permissions]                list all roles
  role-permissions ROLE                          show the permissions of a role
  migrate                                        create or update the schema
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("rolectl", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }

	var site, lang string
	global.StringVar(&site, "site", "", "site name (loads sites/<name>.env)")
	global.StringVar(&lang, "lang", "en", "output language")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.LoadForSite(site)
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "✗ Error: %v\n", err)
		return 1
	}

	// logs em texto no stderr para não misturar com as tabelas
	logger := logging.NewSlogLoggerTo(stderr, cfg.Logging.Level, "text")

	db, err := relational.NewDatabaseConnection(&cfg.Database, cfg.Env, logger)
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "✗ Error: %v\n", err)
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	translator, err := i18n.NewEmbeddedService("en")
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "✗ Error: %v\n", err)
		return 1
	}

	app := newApp(db, translator, lang, stdout, stderr)
	return app.dispatch(context.Background(), global.Arg(0), global.Args()[1:])
}

// newApp monta os serviços usados pelos comandos sobre uma conexão aberta
func newApp(db *gorm.DB, translator *i18n.Service, lang string, stdout, stderr io.Writer) *cli {
	logger := logging.NewSlogLoggerTo(stderr, "warn", "text")
	roleService := services.NewRoleService(
		relational.NewRoleRepository(db),
		relational.NewDocPermissionRepository(db),
		relational.NewDocTypeRepository(db),
		relational.NewUnitOfWork(db),
		cache.NewNoopCache(),
		logger,
	)

	return &cli{
		db:         db,
		roles:      roleService,
		translator: translator,
		lang:       lang,
		out:        stdout,
		errOut:     stderr,
	}
}
