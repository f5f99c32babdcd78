package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

var presetDescriptions = map[preset.Preset]string{
	preset.Public:    "human readable, sensitive information removed",
	preset.Internal:  "human readable, sensitive information kept",
	preset.Developer: "closest to the original XLSForm",
	preset.Minimal:   "every option off",
}

func presetLabel(p preset.Preset) string {
	return fmt.Sprintf("%s: %s", p, presetDescriptions[p])
}

// presetRow is the JSON form of one preset.
type presetRow struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Toggles     preset.Toggles `json:"toggles"`
	Default     bool           `json:"default,omitempty"`
}

var presetsJSON bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the bundled option presets",
	Long: `Print the default value of every option for each bundled preset.

Setting any option to a value other than the preset's default makes the
rendition "custom".`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := presetRows()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if presetsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}
		printPresetTable(out, rows)
		return nil
	},
}

func init() {
	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false, "Output the preset table as JSON")
	rootCmd.AddCommand(presetsCmd)
}

func presetRows() ([]presetRow, error) {
	rows := make([]presetRow, 0, len(preset.Presets()))
	for _, p := range preset.Presets() {
		ts, err := preset.Defaults(p)
		if err != nil {
			return nil, err
		}
		rows = append(rows, presetRow{
			Name:        string(p),
			Description: presetDescriptions[p],
			Toggles:     ts,
			Default:     p == preset.DefaultPreset,
		})
	}
	return rows, nil
}

var (
	styleOn  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleOff = lipgloss.NewStyle().Faint(true)
)

// printPresetTable renders rows with one column per toggle.
func printPresetTable(out io.Writer, rows []presetRow) {
	headers := []string{"preset"}
	for _, tf := range toggleFlags {
		headers = append(headers, fmt.Sprintf("%s (-%s)", tf.Toggle, tf.Shorthand))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range rows {
		name := r.Name
		if r.Default {
			name += " *"
		}
		cells := []string{name}
		for _, tf := range toggleFlags {
			cells = append(cells, onOff(r.Toggles.Get(tf.Toggle)))
		}
		t.Row(cells...)
	}

	fmt.Fprintln(out, t.Render())
	fmt.Fprintln(out, "* default preset")
}

func onOff(v bool) string {
	if v {
		return styleOn.Render("on")
	}
	return styleOff.Render("off")
}
