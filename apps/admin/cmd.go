package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/badge"
	"github.com/trezcool/masomo-lms/core/user"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	db       *sql.DB
	badgeSvc *badge.Service
	users    user.Repository
	out      io.Writer
	outFd    int // checked by isTerminalFunc to pretty-print JSON
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...] - run a goose migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  addbadge -name NAME -description DESC -icon URL -criteria TYPE -value N - create a badge")
	fmt.Fprintln(cli.out, "  badgereport -user ID -institution ID - print a student's badge report")
	fmt.Fprintln(cli.out, "  awardbadges -user ID -institution ID - award the badges a student has earned")
	fmt.Fprintln(cli.out, "  token -user ID - generate an API token for a user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addBadgeCmd := flag.NewFlagSet("addbadge", flag.ExitOnError)
	addBadgeName := addBadgeCmd.String("name", "", "The badge name.")
	addBadgeDesc := addBadgeCmd.String("description", "", "What the badge rewards.")
	addBadgeIcon := addBadgeCmd.String("icon", "", "The badge icon URL.")
	addBadgeCriteria := addBadgeCmd.String("criteria", "", "One of COURSE_COMPLETION, QUESTIONNAIRE_COMPLETION, DAILY_LOGIN, LESSON_COMPLETION, CERTIFICATE_ACHIEVED.")
	addBadgeValue := addBadgeCmd.Int("value", 0, "The count needed to earn the badge.")

	reportCmd := flag.NewFlagSet("badgereport", flag.ExitOnError)
	reportUser := reportCmd.String("user", "", "The student's ID.")
	reportInst := reportCmd.String("institution", "", "The institution's ID.")

	awardCmd := flag.NewFlagSet("awardbadges", flag.ExitOnError)
	awardUser := awardCmd.String("user", "", "The student's ID.")
	awardInst := awardCmd.String("institution", "", "The institution's ID.")

	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenUser := tokenCmd.String("user", "", "The user's ID.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			fmt.Fprintln(cli.out, "Usage: migrate COMMAND [ARGS...]")
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addbadge":
		if err := addBadgeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addBadgeName == "" {
			addBadgeCmd.Usage()
			return errHelp
		}
		return cli.addBadge(badge.NewBadge{
			Name:          *addBadgeName,
			Description:   *addBadgeDesc,
			IconURL:       *addBadgeIcon,
			CriteriaType:  badge.CriteriaType(*addBadgeCriteria),
			CriteriaValue: *addBadgeValue,
		})
	case "badgereport":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *reportUser == "" || *reportInst == "" {
			reportCmd.Usage()
			return errHelp
		}
		return cli.badgeReport(*reportUser, *reportInst)
	case "awardbadges":
		if err := awardCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *awardUser == "" || *awardInst == "" {
			awardCmd.Usage()
			return errHelp
		}
		return cli.awardBadges(*awardUser, *awardInst)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenUser == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUser)
	default:
		cli.printUsage()
		return errHelp
	}
}
