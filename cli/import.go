package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mention-radar/database"
	"mention-radar/mentions"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import mention records from JSON or JSON lines",
		Long:  "Import mention records from a file (or - for stdin). Accepts a JSON array, a single object, or one object per line.",
		Args:  cobra.ExactArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		exitErr("read input", err)
	}

	records, err := mentions.ParseRecords(data)
	if err != nil {
		exitErr("parse records", err)
	}

	cfg, err := openDatabase()
	if err != nil {
		exitErr("init database", err)
	}
	defer database.Close()

	n, err := database.InsertMentions(cmd.Context(), records, cfg.Location())
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf("imported %s mentions (%s read)\n", humanize.Comma(int64(n)), humanize.Bytes(uint64(len(data))))
}
