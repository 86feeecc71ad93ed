package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/masomo-lms/apps/api/echo"
	"github.com/trezcool/masomo-lms/core/badge"
)

func (cli *commandLine) addBadge(nb badge.NewBadge) error {
	bdg, err := cli.badgeSvc.Create(context.Background(), nb)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "badge %q created: %s\n", bdg.Name, bdg.ID)
	return nil
}

func (cli *commandLine) badgeReport(userID, institutionID string) error {
	report, err := cli.badgeSvc.GenerateStudentReport(context.Background(), userID, institutionID)
	if err != nil {
		return err
	}

	var data []byte
	if isTerminalFunc(cli.outFd) {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	fmt.Fprintln(cli.out, string(data))
	return nil
}

func (cli *commandLine) awardBadges(userID, institutionID string) error {
	awarded, err := cli.badgeSvc.AwardEarnedBadges(context.Background(), userID, institutionID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d badge(s) awarded\n", len(awarded))
	for _, sb := range awarded {
		fmt.Fprintf(cli.out, "  %s\n", sb.BadgeID)
	}
	return nil
}

func (cli *commandLine) token(userID string) error {
	usr, err := cli.users.GetUser(context.Background(), userID)
	if err != nil {
		return err
	}
	token, err := echoapi.GenerateToken(echoapi.NewClaims(usr, cli.conf), cli.conf.SecretKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
