package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"parcel/cmd"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
)

var rootCmd = &cobra.Command{
	Use:   "parcelctl",
	Short: "Parcel operator CLI",
	Long: `parcelctl runs operator tasks against the parcel database:
schema migration, tracking reconciliation, payment proof review and admin grants.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PARCEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("dsn", "", "postgres DSN (host=... port=... user=... dbname=...)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Int64("price-base-fee", 0, "flat fee in cents used when re-pricing")
	_ = viper.BindPFlag("dsn", rootCmd.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("price-base-fee", rootCmd.PersistentFlags().Lookup("price-base-fee"))
}

func registerCommands() {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(paymentsCmd())
	rootCmd.AddCommand(adminCmd())
}

func openDB() (*gorm.DB, error) {
	dsn := viper.GetString("dsn")
	if dsn == "" {
		return nil, errors.New("dsn is required (flag --dsn or PARCEL_DSN)")
	}
	return gorm.Open(pgdriver.Open(dsn), &gorm.Config{})
}

func openApp() (cmd.CompositionRoot, error) {
	db, err := openDB()
	if err != nil {
		return cmd.CompositionRoot{}, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return cmd.NewCompositionRoot(cmd.Config{
		PriceBaseFeeCents: viper.GetInt64("price-base-fee"),
	}, db, logger)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	var limit int
	sub := &cobra.Command{
		Use:   "reconcile",
		Short: "Start tracking on accepted requests that missed it",
		RunE: func(c *cobra.Command, _ []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			command, err := commands.NewReconcileTrackingCommand(limit)
			if err != nil {
				return err
			}
			fixed, err := app.CreateReconcileTrackingCommandHandler().Handle(c.Context(), command)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(map[string]int{"reconciled": fixed})
			}
			fmt.Printf("reconciled %d request(s)\n", fixed)
			return nil
		},
	}
	sub.Flags().IntVar(&limit, "limit", 100, "max requests to inspect")
	return sub
}

func paymentsCmd() *cobra.Command {
	sub := &cobra.Command{
		Use:   "payments",
		Short: "Inspect and review payment proofs",
	}
	sub.AddCommand(paymentsPendingCmd())
	sub.AddCommand(paymentsReviewCmd())
	return sub
}

func paymentsPendingCmd() *cobra.Command {
	var limit int
	sub := &cobra.Command{
		Use:   "pending",
		Short: "List requests whose payment proof awaits review",
		RunE: func(c *cobra.Command, _ []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			query, err := queries.NewListPaymentReviewsQuery(limit)
			if err != nil {
				return err
			}
			views, err := app.CreateListPaymentReviewsQueryHandler().Handle(c.Context(), query)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(views)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Request", "Sender", "Route", "Price", "Method", "Amount", "Updated"})
			for _, v := range views {
				method, amount := "", ""
				if v.Proof != nil {
					method = v.Proof.Method
					amount = v.Proof.Amount.String()
				}
				tw.AppendRow(table.Row{
					v.ID.String(), v.SenderID.String(), v.Route.String(),
					v.Price.String(), method, amount, v.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			tw.Render()
			return nil
		},
	}
	sub.Flags().IntVar(&limit, "limit", 50, "max rows")
	return sub
}

func paymentsReviewCmd() *cobra.Command {
	var approve, reject bool
	var adminID string
	sub := &cobra.Command{
		Use:   "review <request-id>",
		Short: "Approve or reject a submitted payment proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if approve == reject {
				return errors.New("exactly one of --approve or --reject is required")
			}
			requestID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return fmt.Errorf("request id: %w", err)
			}
			actorID, err := kernel.UUIDFromString(adminID)
			if err != nil {
				return fmt.Errorf("admin id: %w", err)
			}
			app, err := openApp()
			if err != nil {
				return err
			}
			command, err := commands.NewReviewPaymentProofCommand(requestID, actorID, approve)
			if err != nil {
				return err
			}
			req, err := app.CreateReviewPaymentProofCommandHandler().Handle(c.Context(), command)
			if err != nil {
				return err
			}
			out := map[string]string{
				"id":            req.ID().String(),
				"stage":         req.Stage().String(),
				"paymentStatus": req.PaymentStatus().String(),
			}
			if viper.GetBool("json") {
				return printJSON(out)
			}
			fmt.Printf("request %s: payment %s, stage %s\n", out["id"], out["paymentStatus"], out["stage"])
			return nil
		},
	}
	sub.Flags().BoolVar(&approve, "approve", false, "approve the proof")
	sub.Flags().BoolVar(&reject, "reject", false, "reject the proof")
	sub.Flags().StringVar(&adminID, "admin-id", "", "acting admin user id")
	_ = sub.MarkFlagRequired("admin-id")
	return sub
}

func adminCmd() *cobra.Command {
	sub := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin grants",
	}
	sub.AddCommand(adminSetCmd("grant", "Grant admin rights to a user", true))
	sub.AddCommand(adminSetCmd("revoke", "Revoke admin rights from a user", false))
	return sub
}

func adminSetCmd(use, short string, isAdmin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			userID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return fmt.Errorf("user id: %w", err)
			}
			app, err := openApp()
			if err != nil {
				return err
			}
			if err := app.IdentityProvider().SetAdmin(c.Context(), userID, isAdmin); err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(map[string]any{"userId": userID.String(), "admin": isAdmin})
			}
			fmt.Printf("user %s admin=%t\n", userID, isAdmin)
			return nil
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
