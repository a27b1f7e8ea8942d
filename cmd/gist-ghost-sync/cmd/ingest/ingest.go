package ingest

import (
	"github.com/spf13/cobra"
)

func init() {
	Cmd.AddCommand(catalogCmd)
}

var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest harvested catalogs into the store",
}
