package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// ANSI base colors so the help follows the terminal theme.
var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	usageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	commandStyle = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

const helpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{heading "Usage"}}
  {{usage .UseLine}}{{if .HasAvailableSubCommands}}

{{heading "Commands"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (rpad .Name .NamePadding)}} {{summary .Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags"}}
{{flags (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global flags"}}
{{flags (.InheritedFlags.FlagUsages | trimTrailingWhitespaces)}}{{end}}{{if .HasAvailableSubCommands}}

Run "{{.CommandPath}} [command] --help" for details on a command.{{end}}
`

// StyleHelp installs the colored help template on cmd and its children.
func StyleHelp(cmd *cobra.Command) {
	cobra.AddTemplateFuncs(map[string]any{
		"heading": headingStyle.Render,
		"usage":   usageStyle.Render,
		"command": commandStyle.Render,
		"summary": summaryStyle.Render,
		"flags":   flagStyle.Render,
	})
	cmd.SetHelpTemplate(helpTemplate)
}
