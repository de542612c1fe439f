package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/infrastructure/i18n"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
	"github.com/rafabene/access-admin/internal/services"
)

var (
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

type cli struct {
	db         *gorm.DB
	roles      *services.RoleService
	translator *i18n.Service
	lang       string
	out        io.Writer
	errOut     io.Writer
}

func (a *cli) dispatch(ctx context.Context, command string, args []string) int {
	switch command {
	case "duplicate-role":
		return a.duplicateRole(ctx, args)
	case "list-roles":
		return a.listRoles(ctx, args)
	case "role-permissions":
		return a.rolePermissions(ctx, args)
	case "migrate":
		return a.migrate()
	default:
		failure.Fprintf(a.errOut, "✗ Unknown command %q\n", command)
		fmt.Fprint(a.errOut, usage)
		return 2
	}
}

func (a *cli) duplicateRole(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("duplicate-role", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	noPermissions := fs.Bool("no-permissions", false, "do not copy permissions from the source role")
	if err := fs.Parse(flagsFirst(args)); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		failure.Fprintln(a.errOut, "✗ Usage: rolectl duplicate-role SOURCE NEW [--no-permissions]")
		return 2
	}

	result, err := a.roles.DuplicateRole(ctx, services.DuplicateRoleInput{
		SourceRole:      fs.Arg(0),
		NewRoleName:     fs.Arg(1),
		CopyPermissions: !*noPermissions,
	})
	if err != nil {
		failure.Fprintf(a.out, "✗ %s\n", a.errorMessage(err))
		return 1
	}

	success.Fprintf(a.out, "✓ %s\n", a.translator.T(a.lang, "role.duplicated", map[string]interface{}{
		"Source": result.SourceRole,
		"Role":   result.NewRole,
	}))
	if !*noPermissions {
		fmt.Fprintf(a.out, "  %s\n", a.translator.T(a.lang, "role.permissions_copied", map[string]interface{}{
			"Count": result.PermissionsCreated,
		}))
	}
	for _, failed := range result.FailedPermissions {
		warning.Fprintf(a.out, "  ! %s\n", failed)
	}
	return 0
}

func (a *cli) listRoles(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("list-roles", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	withPermissions := fs.Bool("with-permissions", false, "show permission counts for each role")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	summary, err := a.roles.GetAllRolesSummary(ctx)
	if err != nil {
		failure.Fprintf(a.out, "✗ Error: %s\n", a.errorMessage(err))
		return 1
	}

	table := tablewriter.NewWriter(a.out)
	if *withPermissions {
		fmt.Fprintln(a.out, "Roles with Permission Summary:")
		table.SetHeader([]string{"Role Name", "Permissions", "Desk Access", "Status"})
	} else {
		fmt.Fprintln(a.out, "All Roles:")
		table.SetHeader([]string{"Role Name", "Desk Access", "Status"})
	}
	table.SetBorder(false)
	table.SetColumnSeparator("|")

	for _, role := range summary {
		row := []string{role.Name}
		if *withPermissions {
			row = append(row, strconv.FormatInt(role.PermissionCount, 10))
		}
		row = append(row, yesNo(role.DeskAccess), status(role.Disabled))
		table.Append(row)
	}
	table.Render()
	return 0
}

func (a *cli) rolePermissions(ctx context.Context, args []string) int {
	if len(args) != 1 {
		failure.Fprintln(a.errOut, "✗ Usage: rolectl role-permissions ROLE")
		return 2
	}

	details, err := a.roles.GetRoleDetails(ctx, args[0])
	if err != nil {
		failure.Fprintf(a.out, "✗ Error: %s\n", a.errorMessage(err))
		return 1
	}

	role := details.Role
	fmt.Fprintf(a.out, "Role Details for: %s\n", role.Name)
	fmt.Fprintln(a.out, strings.Repeat("=", 60))
	fmt.Fprintf(a.out, "Desk Access: %s\n", yesNo(role.DeskAccess))
	fmt.Fprintf(a.out, "Two Factor Auth: %s\n", yesNo(role.TwoFactorAuth))
	fmt.Fprintf(a.out, "Disabled: %s\n", yesNo(role.Disabled))
	fmt.Fprintf(a.out, "Is Custom: %s\n", yesNo(role.IsCustom))

	fmt.Fprintln(a.out, "\nPermission Summary:")
	fmt.Fprintf(a.out, "Total Permissions: %d\n", details.TotalPermissions)
	fmt.Fprintf(a.out, "DocType Permissions: %d\n", len(details.DocTypePermissions))
	fmt.Fprintf(a.out, "Custom Permissions: %d\n", len(details.CustomPermissions))

	if len(details.DocTypePermissions) == 0 {
		return 0
	}

	fmt.Fprintln(a.out, "\nDocType Permissions:")
	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"DocType", "Level", "R", "W", "C", "D", "S", "Ca", "A", "Rep", "Exp", "Imp", "Owner"})
	table.SetBorder(false)
	table.SetColumnSeparator("|")
	for _, perm := range details.DocTypePermissions {
		caps := perm.Capabilities
		table.Append([]string{
			perm.Parent,
			strconv.Itoa(perm.PermLevel),
			check(caps.Read), check(caps.Write), check(caps.Create), check(caps.Delete),
			check(caps.Submit), check(caps.Cancel), check(caps.Amend), check(caps.Report),
			check(caps.Export), check(caps.Import), check(caps.IfOwner),
		})
	}
	table.Render()
	return 0
}

func (a *cli) migrate() int {
	if err := relational.Migrate(a.db); err != nil {
		failure.Fprintf(a.out, "✗ Error: %v\n", err)
		return 1
	}
	success.Fprintln(a.out, "✓ Schema up to date")
	return 0
}

// errorMessage traduz erros de negócio; os demais saem como estão
func (a *cli) errorMessage(err error) string {
	if key, params, ok := errors.MessageID(err); ok {
		return a.translator.T(a.lang, key, params)
	}
	return err.Error()
}

// flagsFirst move as flags para antes dos argumentos posicionais
func flagsFirst(args []string) []string {
	flags := make([]string, 0, len(args))
	positional := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
		} else {
			positional = append(positional, arg)
		}
	}
	return append(flags, positional...)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func status(disabled bool) string {
	if disabled {
		return "Disabled"
	}
	return "Active"
}

func check(b bool) string {
	if b {
		return "✓"
	}
	return ""
}
