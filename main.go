package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/todoapp/todoapp/config"
	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/web"
	"github.com/todoapp/todoapp/web/service"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogger()
	defer logger.CloseLogger()

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := config.Load(); err != nil {
				logger.Warning("reload config err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Info("received", sig, "shutting down")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

// openDB prepares the database for a one-shot command.
func openDB() bool {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return false
	}
	return true
}

func addUser(draft *service.UserDraft, role string) {
	if !openDB() {
		return
	}
	defer database.CloseDB()

	user, err := service.NewUserService(database.GetDB()).Register(draft, model.Role(role))
	if err != nil {
		fmt.Println("add user failed:", err)
		return
	}
	fmt.Printf("added %s user %s (id %d)\n", user.Role, user.Username, user.Id)
}

func listUsers() {
	if !openDB() {
		return
	}
	defer database.CloseDB()

	users, err := service.NewUserService(database.GetDB()).List()
	if err != nil {
		fmt.Println("list users failed:", err)
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n", u.Id, u.Username, u.Email, u.Role, u.IsActive)
	}
	w.Flush()
}

func setRole(username string, role string) {
	if !openDB() {
		return
	}
	defer database.CloseDB()

	err := service.NewUserService(database.GetDB()).SetRole(username, model.Role(role))
	if err != nil {
		fmt.Println("set role failed:", err)
		return
	}
	fmt.Printf("set role of %s to %s success\n", username, role)
}

func setActive(username string, active bool) {
	if !openDB() {
		return
	}
	defer database.CloseDB()

	err := service.NewUserService(database.GetDB()).SetActive(username, active)
	if err != nil {
		fmt.Println("update user failed:", err)
		return
	}
	fmt.Printf("set active of %s to %v success\n", username, active)
}

func exportTodos() {
	if !openDB() {
		return
	}
	defer database.CloseDB()

	todos, err := service.NewAdminService(database.GetDB()).Export()
	if err != nil {
		fmt.Println(err)
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(todos); err != nil {
		fmt.Println("export failed:", err)
	}
}

func showSetting() {
	secret := "(random per process)"
	if config.GetJWTSecret() != "" {
		secret = "(set)"
	}
	fmt.Println("current settings as follows:")
	fmt.Println("version:", config.GetVersion())
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("web domain:", config.GetWebDomain())
	fmt.Println("db path:", config.GetDBPath())
	fmt.Println("log level:", config.GetLogLevel())
	fmt.Println("log folder:", config.GetLogFolder())
	fmt.Println("token ttl:", config.GetTokenTTL())
	fmt.Println("jwt secret:", secret)
	fmt.Println("admin legacy 401:", config.IsAdminLegacy401())
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   config.GetName(),
		Short: "Multi-user to-do web application",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := config.Load(); err != nil {
				log.Fatal(err)
			}
		},
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var userAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			role, _ := cmd.Flags().GetString("role")
			addUser(&service.UserDraft{
				Username:  username,
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			}, role)
		},
	}

	userAddCmd.Flags().String("username", "", "login username")
	userAddCmd.Flags().String("email", "", "email address")
	userAddCmd.Flags().String("password", "", "login password")
	userAddCmd.Flags().String("first-name", "", "first name")
	userAddCmd.Flags().String("last-name", "", "last name")
	userAddCmd.Flags().String("role", string(model.RoleUser), "role: user or admin")

	var userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listUsers()
		},
	}

	var userRoleCmd = &cobra.Command{
		Use:   "role <username> <user|admin>",
		Short: "Change the role of an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			setRole(args[0], args[1])
		},
	}

	var userDisableCmd = &cobra.Command{
		Use:   "disable <username>",
		Short: "Block an account from logging in",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			setActive(args[0], false)
		},
	}

	var userEnableCmd = &cobra.Command{
		Use:   "enable <username>",
		Short: "Allow a disabled account to log in again",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			setActive(args[0], true)
		},
	}

	userCmd.AddCommand(userAddCmd, userListCmd, userRoleCmd, userDisableCmd, userEnableCmd)

	var todoCmd = &cobra.Command{
		Use:   "todo",
		Short: "Inspect stored todos",
	}

	var exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write every todo to stdout as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			exportTodos()
		},
	}

	todoCmd.AddCommand(exportCmd)

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	settingCmd.AddCommand(showCmd)

	rootCmd.AddCommand(runCmd, userCmd, todoCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
