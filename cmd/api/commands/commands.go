package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/casadecultura/backend/internal/adapters/repository"
	"github.com/casadecultura/backend/internal/application/services"
	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/config"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/infrastructure/server"
	"github.com/casadecultura/backend/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the REST API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewAdminCommand creates the admin management command
func NewAdminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator management commands",
		Long:  "Create and manage administrator accounts without going through the API",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new administrator",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			if email == "" || password == "" {
				log.Fatal("Email and password are required")
			}

			createAdmin(name, email, password, role)
		},
	}

	createCmd.Flags().String("name", "", "Administrator display name")
	createCmd.Flags().String("email", "", "Administrator email (required)")
	createCmd.Flags().String("password", "", "Administrator password (required)")
	createCmd.Flags().String("role", "admin", "Administrator role (admin, super_admin)")

	adminCmd.AddCommand(createCmd)
	return adminCmd
}

// NewBackupCommand creates the backup command with subcommands
func NewBackupCommand() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup commands",
		Long:  "Create and list content backups from the command line",
	}

	backupCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a backup of events and news",
		Run: func(cmd *cobra.Command, args []string) {
			runBackupCreate()
		},
	})

	backupCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available backups",
		Run: func(cmd *cobra.Command, args []string) {
			runBackupList()
		},
	})

	return backupCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Casa de Cultura Backend v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	bootstrap, err := bootstrapAdmin(cfg.Bootstrap)
	if err != nil {
		appLogger.Fatalw("Failed to prepare bootstrap administrator", "error", err)
	}

	srv, err := server.New(cfg, bootstrap, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)); err != nil {
			appLogger.Infow("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatalw("Server shutdown failed", "error", err)
	}
}

// bootstrapAdmin builds the super admin account seeded into an empty
// admins collection.
func bootstrapAdmin(cfg config.BootstrapConfig) (entities.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.Admin{}, fmt.Errorf("hash bootstrap password: %w", err)
	}

	return entities.Admin{
		Name:         "Administrador",
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         entities.RoleSuperAdmin,
	}, nil
}

func createAdmin(name, email, password, role string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewNop()

	bootstrap, err := bootstrapAdmin(cfg.Bootstrap)
	if err != nil {
		log.Fatalf("Failed to prepare bootstrap administrator: %v", err)
	}

	store := datastore.New(appLogger)
	adminRepo := repository.NewAdminRepository(store, cfg.Storage.AdminsFile(), bootstrap)
	adminService := services.NewAdminService(adminRepo, appLogger)

	if name == "" {
		name = email
	}

	admin, err := adminService.CreateAdmin(context.Background(), ports.CreateAdminRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     entities.AdminRole(role),
	})
	if err != nil {
		log.Fatalf("Failed to create administrator: %v", err)
	}

	fmt.Printf("Administrator created successfully:\n")
	fmt.Printf("  ID: %d\n", admin.ID)
	fmt.Printf("  Email: %s\n", admin.Email)
	fmt.Printf("  Role: %s\n", admin.Role)
}

func runBackupCreate() {
	svc := backupService()

	record, err := svc.CreateBackup(context.Background())
	if err != nil {
		log.Fatalf("Failed to create backup: %v", err)
	}

	fmt.Printf("Backup created: %s (%d bytes)\n", record.Filename, record.Size)
}

func runBackupList() {
	svc := backupService()

	records, err := svc.ListBackups(context.Background())
	if err != nil {
		log.Fatalf("Failed to list backups: %v", err)
	}

	if len(records) == 0 {
		fmt.Println("No backups found")
		return
	}

	for _, record := range records {
		fmt.Printf("%s  %s  %d bytes\n", record.Filename, record.FormattedDate, record.Size)
	}
}

func backupService() *services.BackupService {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewNop()
	store := datastore.New(appLogger)

	return services.NewBackupService(store, cfg.Storage.EventsFile(), cfg.Storage.NewsFile(), cfg.Storage.BackupDir, appLogger)
}
