package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voltrack/voltrack/internal/auth"
	"github.com/voltrack/voltrack/internal/config"
	"github.com/voltrack/voltrack/internal/domain"
	"github.com/voltrack/voltrack/internal/export"
	"github.com/voltrack/voltrack/internal/mail"
	"github.com/voltrack/voltrack/internal/report"
	"github.com/voltrack/voltrack/internal/store"
	"github.com/voltrack/voltrack/internal/web"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "voltrack",
		Short: "Volunteer hours tracker",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "voltrack.yaml", "config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func getStore(cfg config.Config) (*store.Store, error) {
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.DBPath)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			return web.New(cfg, s, mail.New(cfg.SMTP)).Run()
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		fullName string
		username string
		email    string
		role     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Role(role)
			if !r.Valid() {
				return fmt.Errorf("unknown role %q (valid: volunteer, reporter, admin)", role)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			user, err := s.CreateUser(domain.User{
				FullName:     fullName,
				Username:     username,
				Email:        email,
				Role:         r,
				PasswordHash: hash,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created %s user %s (id %d)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "full-name", "", "user's display name")
	cmd.Flags().StringVar(&username, "username", "", "unique login name")
	cmd.Flags().StringVar(&email, "email", "", "unique email address")
	cmd.Flags().StringVar(&role, "role", "volunteer", "volunteer, reporter, or admin")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.MarkFlagRequired("full-name")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

// reportRows loads rows for an optional --from/--to range; blank means
// all time.
func reportRows(s *store.Store, from, to string) ([]report.Row, error) {
	if from == "" && to == "" {
		from, to = "0000-01-01", "9999-12-31"
	} else if err := report.ValidateRange(from, to); err != nil {
		return nil, err
	}
	return s.ReportRows(from, to, nil)
}

func summaryCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print per-person hour totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			rows, err := reportRows(s, from, to)
			if err != nil {
				return err
			}
			totals := report.SortedTotals(report.TotalsByPerson(rows))
			if len(totals) == 0 {
				fmt.Println("No entries.")
				return nil
			}
			for _, t := range totals {
				fmt.Printf("%-30s %8.2f hours\n", t.FullName, t.Hours)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}

func exportCmd() *cobra.Command {
	var from, to, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a per-entry report file (xlsx or csv by extension)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			rows, err := reportRows(s, from, to)
			if err != nil {
				return err
			}

			var payload []byte
			switch {
			case strings.HasSuffix(out, ".csv"):
				payload, err = export.DetailCSV(rows)
			case strings.HasSuffix(out, ".xlsx"):
				payload, err = export.DetailXLSX(rows)
			default:
				return fmt.Errorf("output file %q must end in .xlsx or .csv", out)
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Wrote %d entries to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "volunteer_hours.xlsx", "output file")
	return cmd
}
