package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-lms/core"
	"github.com/trezcool/masomo-lms/core/badge"
	"github.com/trezcool/masomo-lms/core/progress"
	"github.com/trezcool/masomo-lms/core/user"
	emailsvc "github.com/trezcool/masomo-lms/services/email"
	dummydb "github.com/trezcool/masomo-lms/storage/database/dummy"
	"github.com/trezcool/masomo-lms/tests"
)

func setup(t *testing.T) (*commandLine, *dummydb.DB, *bytes.Buffer) {
	t.Helper()

	conf := core.NewTestConfig()
	logger := testutil.NewLogger()
	db := dummydb.Open()

	progressSvc := progress.NewService(db)
	counters := badge.NewCounters(badge.CounterSources{Enrollments: db, Submissions: db, Progress: progressSvc, Certificates: db})
	badgeSvc := badge.NewService(badge.ServiceDeps{
		Badges:        db,
		StudentBadges: db,
		Users:         db,
		Engine:        badge.NewEngine(counters, db, db, logger, conf.Badges.Concurrency),
		Mail:          emailsvc.NewConsoleServiceMock(conf, logger),
		Validate:      testutil.NewValidator(),
		Logger:        logger,
	})

	var out bytes.Buffer
	return &commandLine{
		conf:     conf,
		badgeSvc: badgeSvc,
		users:    db,
		out:      &out,
	}, db, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runTests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q; want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, _, out := setup(t)
	runTests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: "Usage:"},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: "badgereport"},
		{name: "addbadge: no name", args: []string{"addbadge"}, wantErr: errHelp},
		{name: "badgereport: no institution", args: []string{"badgereport", "-user", "u1"}, wantErr: errHelp},
		{name: "awardbadges: no user", args: []string{"awardbadges", "-institution", "i1"}, wantErr: errHelp},
		{name: "token: no user", args: []string{"token"}, wantErr: errHelp},
	})
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, out := setup(t)

	defer func(orig func(string, *sql.DB, fs.FS, string, ...string) error) { gooseRunFunc = orig }(gooseRunFunc)
	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		if dir != "migrations" {
			return fmt.Errorf("unexpected migrations dir %q", dir)
		}
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runTests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "badge_tiers", "sql"}},
	})
}

func Test_commandLine_addBadge(t *testing.T) {
	cli, db, out := setup(t)
	args := func(name, criteria, value string) []string {
		return []string{
			"addbadge", "-name", name, "-description", "Complete lessons",
			"-icon", "https://cdn.test/b.png", "-criteria", criteria, "-value", value,
		}
	}

	runTests(t, cli, out, []cliTest{
		{name: "created", args: args("Bookworm", "lesson_completion", "10"), wantOut: `badge "Bookworm" created`},
		{name: "similar name", args: args("Bookworms", "LESSON_COMPLETION", "20"), wantErrStr: "name: a badge with a similar name already exists: Bookworm"},
	})

	bdgs, err := db.QueryAllBadges(context.Background())
	require.NoError(t, err)
	require.Len(t, bdgs, 1)
	assert.Equal(t, badge.CriteriaLessonCompletion, bdgs[0].CriteriaType)
	assert.Equal(t, 10, bdgs[0].CriteriaValue)

	out.Reset()
	err = cli.run(append([]string{"admin"}, args("Scholar", "lol", "0")...))
	require.Error(t, err)
}

func Test_commandLine_badges(t *testing.T) {
	cli, db, out := setup(t)
	ctx := context.Background()

	testutil.CreateInstitution(db, "i1", false, false)
	lessons := testutil.CreateCourse(db, "c1", 1)
	testutil.CompleteLesson(db, "u1", "i1", lessons[0][0])
	bdg, err := badge.New("first", "First Steps", "desc", "https://cdn.test/first.png", badge.CriteriaLessonCompletion, 1)
	require.NoError(t, err)
	_, err = db.CreateBadge(ctx, bdg)
	require.NoError(t, err)

	defer func(orig func(int) bool) { isTerminalFunc = orig }(isTerminalFunc)
	isTerminalFunc = func(int) bool { return false }

	runTests(t, cli, out, []cliTest{
		{name: "report before award", args: []string{"badgereport", "-user", "u1", "-institution", "i1"}, wantOut: `"earned_badges":0`},
		{name: "award", args: []string{"awardbadges", "-user", "u1", "-institution", "i1"}, wantOut: "1 badge(s) awarded\n  first"},
		{name: "award again", args: []string{"awardbadges", "-user", "u1", "-institution", "i1"}, wantOut: "0 badge(s) awarded"},
		{name: "report after award", args: []string{"badgereport", "-user", "u1", "-institution", "i1"}, wantOut: `"earned_badges":1`},
	})

	isTerminalFunc = func(int) bool { return true }
	out.Reset()
	require.NoError(t, cli.run([]string{"admin", "badgereport", "-user", "u1", "-institution", "i1"}))
	assert.Contains(t, out.String(), `"earned_badges": 1`)
}

func Test_commandLine_token(t *testing.T) {
	cli, db, out := setup(t)
	db.CreateUser(user.User{ID: "a1", Name: "Admin", Username: "admin", Roles: []string{user.RoleAdmin}})

	runTests(t, cli, out, []cliTest{
		{name: "user not found", args: []string{"token", "-user", "lol"}, wantErr: user.ErrNotFound},
	})

	out.Reset()
	require.NoError(t, cli.run([]string{"admin", "token", "-user", "a1"}))

	claims := new(jwt.StandardClaims)
	_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cli.conf.SecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.Subject)
}
