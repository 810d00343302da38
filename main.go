package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bayrii/drivelog/config"
	"github.com/Bayrii/drivelog/database"
	"github.com/Bayrii/drivelog/logger"
	"github.com/Bayrii/drivelog/util/common"
	"github.com/Bayrii/drivelog/web"
	"github.com/Bayrii/drivelog/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close database err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func resetCredentials(username string, password string) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	err = userService.UpdateFirstUser(username, password)
	if err != nil {
		fmt.Println("reset credentials failed:", err)
	} else {
		fmt.Println("reset credentials success")
	}
}

func showSettings() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	userModel, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get current user info failed, error info:", err)
		return
	}

	fmt.Println("current panel settings as follows:")
	fmt.Println("username:", userModel.Username)
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("db path:", config.GetDBPath())
	fmt.Println("session max age:", common.FormatDuration(config.GetSessionMaxAge()))

	experienceService := service.ExperienceService{}
	stats, err := experienceService.DashboardStats(userModel.Id)
	if err == nil {
		fmt.Println("logged trips:", stats.TotalTrips)
		fmt.Println("logged distance:", common.FormatDistance(stats.TotalKm))
	}
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	var rootCmd = &cobra.Command{
		Use: "drivelog",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var resetUsername string
	var resetPassword string
	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset the first account's credentials",
		Run: func(cmd *cobra.Command, args []string) {
			resetCredentials(resetUsername, resetPassword)
		},
	}
	resetCmd.Flags().StringVarP(&resetUsername, "username", "u", "", "new username")
	resetCmd.Flags().StringVarP(&resetPassword, "password", "p", "", "new password")

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSettings()
		},
	}

	rootCmd.AddCommand(runCmd, resetCmd, showCmd)

	if len(os.Args) == 1 {
		runWebServer()
		return
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
