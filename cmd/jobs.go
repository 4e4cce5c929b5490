package cmd

import (
	"os"
	"os/signal"

	"github.com/emrgen/journal/internal/cache"
	"github.com/emrgen/journal/internal/config"
	"github.com/emrgen/journal/internal/jobs"
	"github.com/emrgen/journal/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "jobs commands",
}

func init() {
	jobsCmd.AddCommand(runJobsCommand())
}

func runJobsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "run",
		Short: "run the background jobs",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			if cfg.RedisAddr == "" {
				logrus.Warn("JOURNAL_REDIS_ADDR is not set, nothing to run")
				return
			}

			gormStore := store.NewGormStore(config.GetDb(cfg))
			journalCache := cache.NewRedisJournalCache(cfg.RedisAddr)

			executor := jobs.NewTaskExecutor([]jobs.CronJob{
				jobs.NewCacheEvictJob(gormStore, journalCache),
			})
			executor.Run()
			defer executor.Stop()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt)
			<-stop
		},
	}

	return command
}
