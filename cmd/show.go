package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/launch"
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/property"
	"github.com/firefly-engineering/profilectl/internal/session"
	"github.com/firefly-engineering/profilectl/internal/shellcmd"
)

var showCmd = &cobra.Command{
	Use:   "show [profile] [-- command [args...]]",
	Short: "Show the session a profile would start",
	Long: `Resolves a profile the way a new terminal session would and prints the
resulting session state: program, arguments, working directory, environment
and terminal settings.

Without a profile the default profile is used. A profile that cannot be
loaded falls back to the default with a warning.

Examples:
  profilectl show Work
  profilectl show Work -p "Icon=remote;Directory=/srv"
  profilectl show --workdir /tmp -- htop -d 10`,
	Args: cobra.ArbitraryArgs,
	RunE: runShow,
}

var (
	showWorkdir   string
	showOverrides []string
	showExec      string
	showAll       bool
)

func init() {
	showCmd.Flags().StringVarP(&showWorkdir, "workdir", "w", "", "Initial working directory")
	showCmd.Flags().StringArrayVarP(&showOverrides, "property", "p", nil, "Inline property overrides (Name=Value;Name=Value)")
	showCmd.Flags().StringVarP(&showExec, "exec", "e", "", "Command line to run instead of the profile's command")
	showCmd.Flags().BoolVar(&showAll, "all", false, "Also print every resolved property")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	positional, command := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional, command = args[:dash], args[dash:]
	}
	if len(positional) > 1 {
		return errors.InvalidArgument(fmt.Sprintf("expected at most one profile, got %d", len(positional)))
	}
	if showExec != "" {
		if len(command) > 0 {
			return errors.InvalidArgument("--exec cannot be combined with a command after --")
		}
		command = []string{showExec}
	}

	opts := launch.Options{
		Workdir:   showWorkdir,
		Overrides: showOverrides,
		Command:   command,
	}
	if len(positional) == 1 {
		opts.Profile = positional[0]
	}

	p := opts.Resolve(mgr())
	if err := printSession(cmd.OutOrStdout(), p); err != nil {
		return err
	}
	if showAll {
		fmt.Fprintln(cmd.OutOrStdout())
		return printProperties(cmd.OutOrStdout(), p)
	}
	return nil
}

// printSession creates a recording session from p and prints what the
// session received.
func printSession(out io.Writer, p *profile.Profile) error {
	s := mgr().CreateSession(p)
	r, ok := s.(*session.Recorder)
	if !ok {
		return fmt.Errorf("unexpected session type %T", s)
	}

	base := p
	for base.Hidden() && base.Parent() != nil {
		base = base.Parent()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Profile:\t%s\n", displayName(base))
	if base.Path() != "" {
		fmt.Fprintf(w, "Path:\t%s\n", base.Path())
	}
	fmt.Fprintf(w, "Title:\t%s\n", r.Titles[session.NameRole])
	fmt.Fprintf(w, "Command:\t%s\n", shellcmd.Join(r.Program, r.Arguments))
	fmt.Fprintf(w, "Directory:\t%s\n", r.Directory)
	fmt.Fprintf(w, "Environment:\t%s\n", strings.Join(r.Environment, " "))
	fmt.Fprintf(w, "Icon:\t%s\n", r.IconName)
	if r.KeyBindings != "" {
		fmt.Fprintf(w, "Key bindings:\t%s\n", r.KeyBindings)
	}
	fmt.Fprintf(w, "Tab title:\t%s (local), %s (remote)\n",
		r.TabTitleFormats[session.LocalTabTitle], r.TabTitleFormats[session.RemoteTabTitle])
	if r.History != nil {
		fmt.Fprintf(w, "History:\t%s\n", r.History)
	}
	fmt.Fprintf(w, "Encoding:\t%s\n", r.Codec.Name)
	fmt.Fprintf(w, "Flow control:\t%t\n", r.FlowControl)
	fmt.Fprintf(w, "Silence:\t%ds\n", r.SilenceSeconds)
	fmt.Fprintf(w, "CJK wide:\t%t\n", r.CJKAmbiguous)
	return w.Flush()
}

// printProperties prints the resolved value of every non-null property.
func printProperties(out io.Writer, p *profile.Profile) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROPERTY\tVALUE\tSOURCE")
	fmt.Fprintln(w, "--------\t-----\t------")
	for _, id := range property.All() {
		v := p.Property(id)
		if v.IsNull() {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", id, v.AsString(), sourceOf(p, id))
	}
	return w.Flush()
}

// sourceOf names the profile in p's chain that sets id.
func sourceOf(p *profile.Profile, id property.Property) string {
	for q := p; q != nil; q = q.Parent() {
		if !q.IsPropertySet(id) {
			continue
		}
		if q.Hidden() && q.Path() == "" {
			return "(override)"
		}
		return displayName(q)
	}
	return ""
}
