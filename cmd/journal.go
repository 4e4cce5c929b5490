package cmd

import (
	"context"
	"fmt"

	"github.com/emrgen/journal/internal/cache"
	"github.com/emrgen/journal/internal/config"
	"github.com/emrgen/journal/internal/service"
	"github.com/emrgen/journal/internal/store"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "journal commands",
}

func init() {
	journalCmd.AddCommand(createJournalCommand())
	journalCmd.AddCommand(listJournalsCommand())
}

func journalService() *service.JournalService {
	cfg := config.LoadConfig()

	var journalCache cache.JournalCache
	if cfg.RedisAddr != "" {
		journalCache = cache.NewRedisJournalCache(cfg.RedisAddr)
	}

	return service.NewJournalService(store.NewGormStore(config.GetDb(cfg)), journalCache)
}

func createJournalCommand() *cobra.Command {
	var name string
	var disabled bool
	var hidden bool

	command := &cobra.Command{
		Use:   "create",
		Short: "create a journal",
		Run: func(cmd *cobra.Command, args []string) {
			if name == "" {
				fmt.Println("missing: --name")
				return
			}

			journal, err := journalService().CreateJournal(context.Background(), name, !disabled, !hidden)
			if err != nil {
				fmt.Println("error creating journal:", err)
				return
			}

			fmt.Printf("created journal %d: %s\n", journal.ID, journal.Name)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "journal name")
	command.Flags().BoolVar(&disabled, "disabled", false, "create the journal disabled")
	command.Flags().BoolVar(&hidden, "hidden", false, "create the journal hidden")

	return command
}

func listJournalsCommand() *cobra.Command {
	var name string

	command := &cobra.Command{
		Use:   "list",
		Short: "list journals",
		Run: func(cmd *cobra.Command, args []string) {
			filter := store.JournalFilter{}
			if name != "" {
				filter.Name = &name
			}

			journals, err := journalService().SearchJournals(context.Background(), filter)
			if err != nil {
				fmt.Println("error listing journals:", err)
				return
			}

			for _, journal := range journals {
				fmt.Printf("%d\t%s\tenabled=%v visible=%v trash=%v\n",
					journal.ID, journal.Name, journal.Enabled, journal.Visible, journal.Trash)
			}
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "partial name filter")

	return command
}
