package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/components/shell/queries"
)

type navCmd struct {
	Lint   navLintCmd   `cmd:"" help:"Validate a nav manifest against the schema and tree rules."`
	Print  navPrintCmd  `cmd:"" help:"Print the sidebar as the shell would render it for a path."`
	Export navExportCmd `cmd:"" help:"Write the built-in navigation as a YAML manifest."`
}

type navLintCmd struct {
	Manifest string `arg:"" type:"existingfile" help:"Manifest file to validate."`
}

func (cmd *navLintCmd) Run(_ context.Context) error {
	tree, _, err := shell.LoadNavTree(cmd.Manifest, shell.NewNavSchemaValidator())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ %s: %d groups, %d pages\n", cmd.Manifest, len(tree.Groups()), len(tree.Leaves()))
	return nil
}

type navPrintCmd struct {
	Manifest  string `type:"path" help:"Manifest to print (defaults to the built-in navigation)."`
	Path      string `default:"/crm" help:"Current route used for active and open state."`
	Collapsed bool   `help:"Render the collapsed sidebar."`
	Match     string `default:"prefix" help:"Active route matching: prefix or segment."`
	NoColor   bool   `name:"no-color" help:"Disable coloured output."`
}

func (cmd *navPrintCmd) Run(ctx context.Context) error {
	mode, err := shell.ParseMatchMode(cmd.Match)
	if err != nil {
		return err
	}
	tree := shell.DefaultNavTree()
	if cmd.Manifest != "" {
		if tree, _, err = shell.LoadNavTree(cmd.Manifest, shell.NewNavSchemaValidator()); err != nil {
			return err
		}
	}
	view, err := queries.NewSidebarQuery(tree, shell.NewMatcher(mode), shell.DefaultWidths()).Query(ctx, cmd.Path)
	if err != nil {
		return err
	}
	if cmd.Collapsed {
		sh := shell.Mount(tree, cmd.Path, shell.WithMatcher(shell.NewMatcher(mode)))
		sh.SetCollapsed(true)
		view = sh.Sidebar(cmd.Path)
	}
	if cmd.NoColor {
		color.NoColor = true
	}
	printSidebar(os.Stdout, view)
	return nil
}

var (
	activeStyle = color.New(color.FgGreen, color.Bold)
	titleStyle  = color.New(color.FgCyan)
	mutedStyle  = color.New(color.FgHiBlack)
	badgeStyle  = color.New(color.FgYellow)
)

func printSidebar(w io.Writer, view shell.SidebarView) {
	fmt.Fprintf(w, "sidebar %s (%dpx)\n", modeName(view.Collapsed), view.Width)
	printNodes(w, view.Nodes)
}

func modeName(collapsed bool) string {
	if collapsed {
		return string(shell.ModeCollapsed)
	}
	return string(shell.ModeExpanded)
}

func printNodes(w io.Writer, nodes []shell.SidebarNode) {
	for _, node := range nodes {
		indent := strings.Repeat("  ", node.Depth+1)
		switch node.Shape {
		case shell.ShapeTitle:
			fmt.Fprintf(w, "%s%s\n", indent, titleStyle.Sprint(node.Text))
		case shell.ShapeGroup:
			marker := "▸"
			if node.Open {
				marker = "▾"
			}
			line := fmt.Sprintf("%s %s", marker, node.Text)
			fmt.Fprintf(w, "%s%s%s\n", indent, styled(line, node.Active), suffix(node))
			printNodes(w, node.Children)
		default:
			line := fmt.Sprintf("• %s %s", node.Text, mutedStyle.Sprint(node.Path))
			fmt.Fprintf(w, "%s%s%s\n", indent, styled(line, node.Active), suffix(node))
		}
	}
}

func styled(line string, active bool) string {
	if active {
		return activeStyle.Sprint(line)
	}
	return line
}

func suffix(node shell.SidebarNode) string {
	var parts []string
	if node.Badge != nil {
		parts = append(parts, badgeStyle.Sprintf("[%s]", node.Badge.Text))
	}
	if node.Active {
		parts = append(parts, "(active)")
	}
	if node.Disabled {
		parts = append(parts, mutedStyle.Sprint("(disabled)"))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

type navExportCmd struct {
	Out       string `arg:"" help:"Output manifest path (use - for stdout)."`
	Branding  bool   `default:"true" negatable:"" help:"Include the default branding block."`
	Overwrite bool   `help:"Overwrite an existing file."`
}

func (cmd *navExportCmd) Run(_ context.Context) error {
	var branding *shell.Branding
	if cmd.Branding {
		b := shell.DefaultBranding()
		branding = &b
	}
	doc := shell.ManifestFor(shell.DefaultNavTree(), branding)
	if cmd.Out == "-" {
		return shell.WriteManifest(os.Stdout, doc)
	}
	if !cmd.Overwrite {
		if _, err := os.Stat(cmd.Out); err == nil {
			return fmt.Errorf("shellctl: %s already exists (use --overwrite to replace)", cmd.Out)
		}
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("shellctl: create output dir: %w", err)
	}
	f, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("shellctl: create %s: %w", cmd.Out, err)
	}
	defer f.Close()
	if err := shell.WriteManifest(f, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote %d entries to %s\n", len(doc.Entries), cmd.Out)
	return nil
}
