package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/firefly-engineering/profilectl/internal/audit"
	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/manager"
	"github.com/firefly-engineering/profilectl/internal/testutil"
	"github.com/firefly-engineering/profilectl/internal/tui"
	"github.com/firefly-engineering/profilectl/internal/watcher"
)

// resetFlags restores every flag of c and its subcommands to its default,
// since cobra keeps parsed values between Execute calls.
func resetFlags(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(args ...string) (string, string, error) {
	return executeWithInput(nil, args...)
}

func executeWithInput(in io.Reader, args ...string) (string, string, error) {
	// Reset flag values before each test
	resetFlags(rootCmd)

	cmd := rootCmd
	cmd.SetArgs(args)
	if in != nil {
		cmd.SetIn(in)
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetIn(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)
	logging.Stdout = os.Stdout
	logging.Stderr = os.Stderr

	return stdout.String(), stderr.String(), err
}

func setupTestEnv(t *testing.T) *testutil.TestEnv {
	t.Helper()
	env := testutil.NewTestEnv(t)
	env.InstallFixtures()
	return env
}

func wantExitCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with exit code %d", code)
	}
	if got := errors.GetExitCode(err); got != code {
		t.Errorf("exit code = %d, want %d (error: %v)", got, code, err)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "profilectl") {
		t.Error("Help output should contain 'profilectl'")
	}

	if !strings.Contains(stdout, "profile") {
		t.Error("Help output should mention profiles")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{
		"profiles", "properties", "show", "set", "new", "delete", "default",
		"favorite", "shortcut", "tabs", "pick", "watch", "sessions", "journal",
	}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommand_DataDirFlag(t *testing.T) {
	env := setupTestEnv(t)
	other := filepath.Join(env.TmpDir, "other")

	stdout, _, err := executeCommand("--data-dir", other, "--config-dir", filepath.Join(env.TmpDir, "other-config"), "profiles", "--names")
	if err != nil {
		t.Fatalf("profiles failed: %v", err)
	}
	if strings.Contains(stdout, "Work") {
		t.Errorf("profiles from the default data dir leaked into --data-dir output:\n%s", stdout)
	}
	if got := paths().DataHome; got != other {
		t.Errorf("DataHome = %q, want %q", got, other)
	}
}

func TestProfiles(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("profiles")
	if err != nil {
		t.Fatalf("profiles failed: %v", err)
	}

	for _, want := range []string{"NAME", "Work (default)", "Shell", "Legacy", "★", "Ctrl+Alt+W", "bash -l"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("profiles output missing %q:\n%s", want, stdout)
		}
	}
}

func TestProfiles_Names(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("profiles", "--names")
	if err != nil {
		t.Fatalf("profiles --names failed: %v", err)
	}
	if stdout != "Legacy\nShell\nWork\n" {
		t.Errorf("profiles --names = %q", stdout)
	}
}

func TestProfiles_Empty(t *testing.T) {
	testutil.NewTestEnv(t)

	stdout, _, err := executeCommand("profiles")
	if err != nil {
		t.Fatalf("profiles failed: %v", err)
	}
	if !strings.Contains(stdout, "No profiles found") {
		t.Errorf("expected empty-list hint, got:\n%s", stdout)
	}
}

func TestProperties(t *testing.T) {
	testutil.NewTestEnv(t)

	stdout, _, err := executeCommand("properties")
	if err != nil {
		t.Fatalf("properties failed: %v", err)
	}
	for _, want := range []string{"Command : string", "Environment : []string", "HistorySize : int"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("properties output missing %q", want)
		}
	}
}

func TestShow(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("show", "Work")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"Work", "bash -l", "/srv/work", "TERM=xterm-256color", "PROFILEHOME=/srv/work"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}
}

func TestShow_Overrides(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("show", "Work", "-p", "Icon=remote-host", "-w", "/opt/override", "--", "htop", "-d", "10")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"htop -d 10", "/opt/override", "remote-host"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "bash -l") {
		t.Error("command after -- should replace the profile command")
	}
}

func TestShow_All(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("show", "Work", "--all")
	if err != nil {
		t.Fatalf("show --all failed: %v", err)
	}
	if !strings.Contains(stdout, "PROPERTY") || !strings.Contains(stdout, "ColorScheme") {
		t.Errorf("show --all should list properties:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Breeze") {
		t.Error("inherited ColorScheme should be listed")
	}
}

func TestShow_UnknownProfileFallsBack(t *testing.T) {
	setupTestEnv(t)

	stdout, _, err := executeCommand("show", "Nope")
	if err != nil {
		t.Fatalf("show should fall back to the default profile: %v", err)
	}
	if !strings.Contains(stdout, "/srv/work") {
		t.Errorf("expected the default profile's session:\n%s", stdout)
	}
}

func TestShow_TooManyProfiles(t *testing.T) {
	setupTestEnv(t)

	_, _, err := executeCommand("show", "Work", "Shell")
	wantExitCode(t, err, errors.ExitInvalidArgument)
}

func TestSet(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := executeCommand("set", "Work", "Icon=remote;Directory=/opt/x")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(stdout, "Updated Work") {
		t.Errorf("expected success message, got:\n%s", stdout)
	}

	env.Reload()
	work := env.LoadProfile(testutil.WorkProfile)
	if work.Icon() != "remote" {
		t.Errorf("Icon = %q, want remote", work.Icon())
	}
	if work.Directory() != "/opt/x" {
		t.Errorf("Directory = %q, want /opt/x", work.Directory())
	}
	if work.Parent() == nil || work.Parent().Name() != "Shell" {
		t.Error("saving should keep the parent")
	}
}

func TestSet_NoSave(t *testing.T) {
	env := setupTestEnv(t)

	if _, _, err := executeCommand("set", "Work", "Icon=remote", "--no-save"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	env.Reload()
	if got := env.LoadProfile(testutil.WorkProfile).Icon(); got == "remote" {
		t.Error("--no-save should not write the profile")
	}
}

func TestSet_Errors(t *testing.T) {
	setupTestEnv(t)

	_, _, err := executeCommand("set", "Work", "Bogus=1")
	wantExitCode(t, err, errors.ExitInvalidArgument)

	_, _, err = executeCommand("set", "Nope", "Icon=x")
	wantExitCode(t, err, errors.ExitProfileNotFound)
}

func TestNew(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := executeCommand("new", "Build",
		"--parent", "Work",
		"--command", "make -j4",
		"-w", "/opt/build",
		"--favorite",
		"--shortcut", "Ctrl+B")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if !env.ProfileExists("Build.profile") {
		t.Fatal("Build.profile was not written")
	}

	env.Reload()
	m := env.Manager()
	build := env.LoadProfile("Build")
	if build.Command() != "make" || len(build.Arguments()) != 1 || build.Arguments()[0] != "-j4" {
		t.Errorf("command = %q %v, want make [-j4]", build.Command(), build.Arguments())
	}
	if build.Directory() != "/opt/build" {
		t.Errorf("Directory = %q", build.Directory())
	}
	if build.Parent() == nil || build.Parent().Name() != "Work" {
		t.Error("Build should inherit from Work")
	}
	if !m.IsFavorite(build) {
		t.Error("Build should be a favorite")
	}
	if p, err := m.FindByShortcut("Ctrl+B"); err != nil || p != build {
		t.Errorf("FindByShortcut(Ctrl+B) = %v, %v", p, err)
	}
}

func TestNew_Errors(t *testing.T) {
	setupTestEnv(t)

	_, _, err := executeCommand("new", "Work")
	wantExitCode(t, err, errors.ExitInvalidArgument)

	_, _, err = executeCommand("new", ".hidden")
	wantExitCode(t, err, errors.ExitInvalidArgument)

	_, _, err = executeCommand("new", "Child", "--parent", "Nope")
	wantExitCode(t, err, errors.ExitProfileNotFound)
}

func TestDelete(t *testing.T) {
	env := setupTestEnv(t)
	workPath := env.LoadProfile(testutil.WorkProfile).Path()

	if _, _, err := executeCommand("delete", "Work"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if env.ProfileExists(testutil.WorkProfile) {
		t.Error("Work.profile should be removed")
	}

	env.Reload()
	m := env.Manager()
	if m.DefaultProfile().Path() == workPath {
		t.Error("deleted profile is still the default")
	}
	if _, err := m.FindByShortcut("Ctrl+Alt+W"); err == nil {
		t.Error("shortcut of deleted profile should be gone")
	}
}

func TestDefault(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := executeCommand("default")
	if err != nil {
		t.Fatalf("default failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "Work") {
		t.Errorf("default = %q, want Work", stdout)
	}

	if _, _, err := executeCommand("default", "Shell"); err != nil {
		t.Fatalf("default Shell failed: %v", err)
	}
	env.Reload()
	if got := env.Manager().DefaultProfile().Path(); filepath.Base(got) != testutil.ShellProfile {
		t.Errorf("default profile = %q, want Shell.profile", got)
	}
}

func TestFavorite(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := executeCommand("favorite", "list")
	if err != nil {
		t.Fatalf("favorite list failed: %v", err)
	}
	if !strings.Contains(stdout, "Shell") || !strings.Contains(stdout, "Work") {
		t.Errorf("favorite list = %q", stdout)
	}

	if _, _, err := executeCommand("favorite", "remove", "Work"); err != nil {
		t.Fatalf("favorite remove failed: %v", err)
	}
	if _, _, err := executeCommand("favorite", "add", "Legacy"); err != nil {
		t.Fatalf("favorite add failed: %v", err)
	}

	env.Reload()
	m := env.Manager()
	if m.IsFavorite(env.LoadProfile(testutil.WorkProfile)) {
		t.Error("Work should no longer be a favorite")
	}
	if !m.IsFavorite(env.LoadProfile(testutil.LegacyProfile)) {
		t.Error("Legacy should be a favorite")
	}
}

func TestShortcut(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := executeCommand("shortcut", "find", "Ctrl+Alt+W")
	if err != nil {
		t.Fatalf("shortcut find failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "Work") {
		t.Errorf("shortcut find = %q", stdout)
	}

	stdout, _, err = executeCommand("shortcut", "list")
	if err != nil {
		t.Fatalf("shortcut list failed: %v", err)
	}
	if !strings.Contains(stdout, "Ctrl+Alt+W") {
		t.Errorf("shortcut list = %q", stdout)
	}

	if _, _, err := executeCommand("shortcut", "set", "Ctrl+S", "Shell"); err != nil {
		t.Fatalf("shortcut set failed: %v", err)
	}
	if _, _, err := executeCommand("shortcut", "remove", "Work"); err != nil {
		t.Fatalf("shortcut remove failed: %v", err)
	}

	env.Reload()
	m := env.Manager()
	if p, err := m.FindByShortcut("Ctrl+S"); err != nil || p.Name() != "Shell" {
		t.Errorf("FindByShortcut(Ctrl+S) = %v, %v", p, err)
	}
	if _, err := m.FindByShortcut("Ctrl+Alt+W"); err == nil {
		t.Error("Ctrl+Alt+W should be unbound")
	}

	_, _, err = executeCommand("shortcut", "find", "Ctrl+Nope")
	wantExitCode(t, err, errors.ExitShortcutNotFound)
}

func TestTabs(t *testing.T) {
	env := setupTestEnv(t)
	path, err := testutil.CopyFixture(testutil.TabsFile, env.TmpDir)
	if err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand("tabs", path, "--mux", "tmux", "--attach")
	if err != nil {
		t.Fatalf("tabs failed: %v", err)
	}
	for _, want := range []string{
		"#!/bin/sh\n",
		"tmux new-session -d -s profilectl -n Editor -c /srv/work",
		"tmux new-window -t profilectl -n Logs -c /var/log",
		"'journalctl -f'",
		"tmux attach-session -t profilectl",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("tabs script missing %q:\n%s", want, stdout)
		}
	}
}

func TestTabs_Wezterm(t *testing.T) {
	setupTestEnv(t)

	input := "title: Top;; command: top\n"
	stdout, _, err := executeWithInput(strings.NewReader(input), "tabs", "-", "--mux", "wezterm", "--name", "dev")
	if err != nil {
		t.Fatalf("tabs failed: %v", err)
	}
	if !strings.Contains(stdout, "wezterm cli spawn --new-window --workspace dev") {
		t.Errorf("unexpected wezterm script:\n%s", stdout)
	}
	if !strings.Contains(stdout, "set-tab-title") {
		t.Errorf("wezterm script should set the tab title:\n%s", stdout)
	}
}

func TestTabs_Errors(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := executeCommand("tabs", filepath.Join(env.TmpDir, "missing.txt"))
	wantExitCode(t, err, errors.ExitInvalidArgument)

	_, _, err = executeWithInput(strings.NewReader("title: x\n"), "tabs", "-", "--mux", "screen")
	wantExitCode(t, err, errors.ExitInvalidArgument)
}

func TestSessions(t *testing.T) {
	env := setupTestEnv(t)

	if _, _, err := executeCommand("sessions", "add", "Work", "-p", "Directory=/opt/api"); err != nil {
		t.Fatalf("sessions add failed: %v", err)
	}
	if _, _, err := executeCommand("sessions", "add", "Shell"); err != nil {
		t.Fatalf("sessions add failed: %v", err)
	}
	if _, err := os.Stat(env.Paths.SessionsFile()); err != nil {
		t.Fatalf("sessions file not written: %v", err)
	}

	stdout, _, err := executeCommand("sessions", "list")
	if err != nil {
		t.Fatalf("sessions list failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("sessions list has %d lines, want header + 2:\n%s", len(lines), stdout)
	}
	if !strings.Contains(lines[2], "Work") || !strings.Contains(lines[2], "/opt/api") {
		t.Errorf("first session = %q", lines[2])
	}
	if !strings.Contains(lines[3], "Shell") {
		t.Errorf("second session = %q", lines[3])
	}

	stdout, _, err = executeCommand("sessions", "script", "--mux", "tmux")
	if err != nil {
		t.Fatalf("sessions script failed: %v", err)
	}
	if !strings.Contains(stdout, "tmux new-session -d -s profilectl -n Work -c /opt/api") {
		t.Errorf("unexpected script:\n%s", stdout)
	}

	if _, _, err := executeCommand("sessions", "remove", "1"); err != nil {
		t.Fatalf("sessions remove failed: %v", err)
	}
	stdout, _, _ = executeCommand("sessions", "list")
	if strings.Contains(stdout, "/opt/api") {
		t.Errorf("removed session still listed:\n%s", stdout)
	}

	_, _, err = executeCommand("sessions", "remove", "9")
	wantExitCode(t, err, errors.ExitInvalidArgument)

	if _, _, err := executeCommand("sessions", "clear"); err != nil {
		t.Fatalf("sessions clear failed: %v", err)
	}
	if _, err := os.Stat(env.Paths.SessionsFile()); !os.IsNotExist(err) {
		t.Error("sessions file should be removed")
	}
}

func TestJournal(t *testing.T) {
	setupTestEnv(t)

	if _, _, err := executeCommand("set", "Work", "Icon=remote"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	stdout, _, err := executeCommand("journal", "Work")
	if err != nil {
		t.Fatalf("journal failed: %v", err)
	}
	if !strings.Contains(stdout, string(manager.EventProfileChanged)) {
		t.Errorf("journal missing profile_changed:\n%s", stdout)
	}

	stdout, _, err = executeCommand("journal", "--raw")
	if err != nil {
		t.Fatalf("journal --raw failed: %v", err)
	}
	var event audit.Event
	first := strings.SplitN(stdout, "\n", 2)[0]
	if err := json.Unmarshal([]byte(first), &event); err != nil {
		t.Fatalf("journal --raw line is not JSON: %v\n%s", err, first)
	}
	if event.Profile != "Work" {
		t.Errorf("event profile = %q, want Work", event.Profile)
	}

	stdout, _, err = executeCommand("journal", "Nope")
	if err != nil {
		t.Fatalf("journal failed: %v", err)
	}
	if !strings.Contains(stdout, "No events found") {
		t.Errorf("expected empty journal hint, got:\n%s", stdout)
	}

	if _, _, err := executeCommand("journal", "--clear"); err != nil {
		t.Fatalf("journal --clear failed: %v", err)
	}
	stdout, _, _ = executeCommand("journal")
	if !strings.Contains(stdout, "No events recorded") {
		t.Errorf("journal should be empty after --clear:\n%s", stdout)
	}
}

func TestWatchLoop(t *testing.T) {
	env := setupTestEnv(t)
	m := env.Manager()
	work := env.LoadProfile(testutil.WorkProfile)

	env.WriteProfile(testutil.WorkProfile, `[General]
Name=Work
Parent=Shell.profile
Command=bash -l
Directory=/srv/work
MenuIndex=1
Icon=changed

[Scrolling]
HistoryMode=2
`)
	extra := env.WriteProfile("Extra.profile", "[General]\nName=Extra\n")

	events := make(chan watcher.Event, 3)
	events <- watcher.Event{Path: work.Path(), Op: watcher.Changed}
	events <- watcher.Event{Path: extra, Op: watcher.Changed}
	events <- watcher.Event{Path: filepath.Join(env.Paths.WritableProfileDir(), "Gone.profile"), Op: watcher.Removed}
	close(events)

	var out bytes.Buffer
	if err := watchLoop(context.Background(), m, events, nil, &out); err != nil {
		t.Fatalf("watchLoop() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"changed Work: Icon", "added Extra", "removed "} {
		if !strings.Contains(got, want) {
			t.Errorf("watch output missing %q:\n%s", want, got)
		}
	}
	if work.Icon() != "changed" {
		t.Errorf("Icon = %q, want changed", work.Icon())
	}
}

func TestWatchLoop_ContextDone(t *testing.T) {
	env := setupTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan watcher.Event)
	if err := watchLoop(ctx, env.Manager(), events, nil, io.Discard); err != nil {
		t.Errorf("watchLoop() error = %v", err)
	}
}

func TestHandlePick(t *testing.T) {
	env := setupTestEnv(t)
	logging.Stdout = io.Discard
	defer func() { logging.Stdout = os.Stdout }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	m := env.Manager()
	legacy := env.LoadProfile(testutil.LegacyProfile)

	if err := handlePick(rootCmd, tui.PickerResult{Action: tui.ActionFavorite, Profile: legacy}); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if !m.IsFavorite(legacy) {
		t.Error("Legacy should be a favorite")
	}

	if err := handlePick(rootCmd, tui.PickerResult{Action: tui.ActionDefault, Profile: legacy}); err != nil {
		t.Fatalf("default: %v", err)
	}
	if m.DefaultProfile() != legacy {
		t.Error("Legacy should be the default")
	}

	if err := handlePick(rootCmd, tui.PickerResult{Action: tui.ActionLaunch, Profile: legacy}); err != nil {
		t.Fatalf("launch: %v", err)
	}
	if !strings.Contains(out.String(), "mc -b") {
		t.Errorf("launch should print the session:\n%s", out.String())
	}

	opts := &tui.NewProfileOptions{Name: "FromPicker", Command: "top"}
	if err := handlePick(rootCmd, tui.PickerResult{Action: tui.ActionNew, NewProfile: opts}); err != nil {
		t.Fatalf("new: %v", err)
	}
	if !env.ProfileExists("FromPicker.profile") {
		t.Error("FromPicker.profile was not written")
	}

	if err := handlePick(rootCmd, tui.PickerResult{Action: tui.ActionQuit}); err != nil {
		t.Errorf("quit: %v", err)
	}
}

func TestPick_NonInteractive(t *testing.T) {
	if isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) {
		t.Skip("running in a terminal")
	}
	setupTestEnv(t)

	stdout, _, err := executeCommand("pick")
	if err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	for _, want := range []string{"Favorites", "Work (default)", "Legacy"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("pick output missing %q:\n%s", want, stdout)
		}
	}
}
