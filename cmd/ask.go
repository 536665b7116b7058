package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/solvewise/internal/content"
	"github.com/abhisek/solvewise/internal/render"
)

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send one message and print the reply",
	Long:  "Send one message to the tutor and print the classified reply. Tutor errors are printed as the reply and do not change the exit code.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctrl := newController(cfg, logger, true)
		turn, err := ctrl.Send(cmdContext(cmd), strings.Join(args, " "))
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		return printContent(cmd.OutOrStdout(), turn.Content, asJSON)
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify a reply body from a file or stdin",
	Long:  "Read a tutor reply body and print how the chat screen would show it. JSON input is decoded first; anything else is treated as text.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) == 1 && args[0] != "-" {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("read reply: %w", err)
		}

		c := content.Classify(decodeBody(data))
		asJSON, _ := cmd.Flags().GetBool("json")
		if !asJSON {
			printf(cmd, "kind: %s\n\n", content.KindOf(c))
		}
		return printContent(cmd.OutOrStdout(), c, asJSON)
	},
}

// decodeBody returns the decoded JSON value of data, or data as a string
// when it is not a JSON document.
func decodeBody(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

func printContent(w io.Writer, c content.Content, asJSON bool) error {
	if asJSON {
		b, err := content.Encode(c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	_, err := fmt.Fprintln(w, render.Plain(c))
	return err
}

func init() {
	askCmd.Flags().Bool("json", false, "Print the tagged JSON encoding instead of text")
	classifyCmd.Flags().Bool("json", false, "Print the tagged JSON encoding instead of text")
}
