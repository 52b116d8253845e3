package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mention-radar/database"
	"mention-radar/mentions"
)

func init() {
	cmd := &cobra.Command{
		Use:   "count <term>",
		Short: "Count stored mentions that mention a keyword",
		Args:  cobra.ExactArgs(1),
		Run:   runCount,
	}

	RootCmd.AddCommand(cmd)
}

func runCount(cmd *cobra.Command, args []string) {
	cfg, err := openDatabase()
	if err != nil {
		exitErr("init database", err)
	}
	defer database.Close()

	records, err := database.ListMentions(cmd.Context(), database.MentionQuery{Limit: cfg.Limits.MentionScan})
	if err != nil {
		exitErr("list mentions", err)
	}

	n := mentions.CountMatches(records, args[0])
	fmt.Printf("%q: %s of %s mentions\n", args[0], humanize.Comma(int64(n)), humanize.Comma(int64(len(records))))
}
