package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	pkg "git.solsynth.dev/hypernet/yatube/pkg/internal"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/cache"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" __   __    _         _\n \\ \\ / /_ _| |_ _   _| |__   ___\n  \\ V / _` | __| | | | '_ \\ / _ \\\n   | | (_| | |_| |_| | |_) |  __/\n   |_|\\__,_|\\__|\\__,_|_.__/ \\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Yatube"), pkg.AppVersion)
	fmt.Printf("The blogging service in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("yatube")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("bind", ":8000")
	viper.SetDefault("page_size", services.DefaultPageSize)
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("media.root", services.DefaultMediaRoot)
	viper.SetDefault("media.url", services.DefaultMediaURL)

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	if viper.GetBool("debug.enabled") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Seed groups
	if err := services.EnsureGroups(services.ReadGroupConfig()); err != nil {
		log.Error().Err(err).Msg("An error occurred when seeding groups...")
	}

	// Initialize cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoMediaCleanup)
	quartz.Start()

	// Server
	server := http.NewServer()
	go server.Listen()

	log.Info().Str("bind", viper.GetString("bind")).Msg("Yatube is up and running!")

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
}
