package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/service"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

// cliActor is recorded in the activity log for operator commands.
var cliActor = service.ActivityActor{Role: "operator"}

type commandLine struct {
	courses   service.CourseService
	promotion service.PromotionService
	auth      service.AuthService
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  seed-courses                          - create the course catalog (idempotent)")
	fmt.Fprintln(cli.out, "  promote-messages                      - publish scheduled messages that are due")
	fmt.Fprintln(cli.out, "  delete-course -id ID                  - delete a course, its materials and scheduled messages")
	fmt.Fprintln(cli.out, "  create-admin -username USER -email E  - create an administrator; the password is prompted next")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	deleteCourseCmd := flag.NewFlagSet("delete-course", flag.ContinueOnError)
	deleteCourseCmd.SetOutput(cli.out)
	deleteCourseID := deleteCourseCmd.Uint("id", 0, "The course id.")

	createAdminCmd := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	createAdminCmd.SetOutput(cli.out)
	createAdminUsername := createAdminCmd.String("username", "", "The administrator's username. The password will be prompted next.")
	createAdminEmail := createAdminCmd.String("email", "", "The administrator's email (optional).")

	switch args[1] {
	case "seed-courses":
		return cli.seedCourses(ctx)
	case "promote-messages":
		return cli.promoteMessages(ctx)
	case "delete-course":
		if err := deleteCourseCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteCourseID == 0 {
			deleteCourseCmd.Usage()
			return errHelp
		}
		return cli.deleteCourse(ctx, *deleteCourseID)
	case "create-admin":
		if err := createAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createAdminUsername == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			createAdminCmd.Usage()
			return errHelp
		}
		return cli.createAdmin(ctx, *createAdminUsername, *createAdminEmail, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) seedCourses(ctx context.Context) error {
	result, err := cli.courses.SeedCatalog(ctx)
	if err != nil {
		return err
	}
	for _, item := range result.Items {
		fmt.Fprintf(cli.out, "%s: %s\n", item.Status, item.Name)
	}
	fmt.Fprintf(cli.out, "%d created, %d already present\n", result.Created, result.Existing)
	return nil
}

func (cli *commandLine) promoteMessages(ctx context.Context) error {
	report, err := cli.promotion.Run(ctx)
	if err != nil {
		return err
	}
	if report.Empty() {
		fmt.Fprintln(cli.out, "no scheduled messages to process")
		return nil
	}
	for _, promoted := range report.Processed {
		fmt.Fprintf(cli.out, "promoted: %s (course %d)\n", promoted.Title, promoted.CourseID)
	}
	fmt.Fprintf(cli.out, "%d promoted, %d skipped, %d failed\n", len(report.Processed), report.Skipped, report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d scheduled messages failed to promote", report.Failed)
	}
	return nil
}

func (cli *commandLine) deleteCourse(ctx context.Context, id uint) error {
	if err := cli.courses.Delete(ctx, id, cliActor); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "course %d deleted\n", id)
	return nil
}

func (cli *commandLine) createAdmin(ctx context.Context, username, email, password string) error {
	account, err := cli.auth.CreateAdmin(ctx, dto.CreateAdminRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "administrator %q created (id %d)\n", account.Username, account.ID)
	return nil
}
