package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/catalogctl/internal/catalogapi"
	"github.com/muurk/catalogctl/internal/config"
	"github.com/muurk/catalogctl/internal/editor/tui"
	"github.com/muurk/catalogctl/internal/logging"
	"github.com/muurk/catalogctl/internal/productform"
	"github.com/muurk/catalogctl/internal/ui"
	"github.com/muurk/catalogctl/internal/urls"
)

// Command flags
var (
	apiURL       string
	storeID      string
	timeoutSecs  int
	outputFormat string
	assumeYes    bool
)

func init() {
	// Common flags for store commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Admin API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storeID, "store", "", "Store id (overrides preferences.default_store)")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "Request timeout in seconds (0 uses config)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(showCmd)
}

// session is the resolved target and client shared by store commands.
type session struct {
	registry *config.Registry
	target   config.Target
	client   *catalogapi.Client
}

func openSession() (*session, error) {
	reg, err := config.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	target, err := reg.Resolve(apiURL, storeID)
	if err != nil {
		return nil, err
	}

	client := catalogapi.NewClient(target.APIURL, target.StoreID)
	timeout := reg.RequestTimeout()
	if timeoutSecs > 0 {
		timeout = time.Duration(timeoutSecs) * time.Second
	}
	client.SetTimeout(timeout)

	logging.Debug("session opened",
		zap.String("api", target.APIURL),
		zap.String("store", target.StoreID),
		zap.Duration("timeout", timeout))

	return &session{registry: reg, target: target, client: client}, nil
}

// remember records the store as recently used. Failures only cost the
// convenience, so they are logged and dropped.
func (s *session) remember() {
	s.registry.TouchStore(s.target.StoreID, s.target.APIURL)
	if err := s.registry.Save(); err != nil {
		logging.Warn("failed to save config", zap.Error(err))
	}
}

func (s *session) params() []ui.Detail {
	return []ui.Detail{
		{Key: "Store", Value: s.target.StoreID},
		{Key: "API", Value: s.target.APIURL},
	}
}

// createCmd opens the form in create mode
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product interactively",
	Long: `Open the product form with empty values.

Category, size and color lists are loaded from the admin API before the
form opens. Press ctrl+s to create the product.`,
	Example: `  catalogctl create --store store_1`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd.Context(), "")
	},
}

// editCmd opens the form for an existing product
var editCmd = &cobra.Command{
	Use:   "edit <product-id>",
	Short: "Edit a product interactively",
	Long: `Open the product form seeded with an existing product.

The form also offers a Delete action, which asks for confirmation before
removing the product.`,
	Example: `  catalogctl edit prod_42 --store store_1`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd.Context(), args[0])
	},
}

func runForm(ctx context.Context, productID string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	printer := ui.NewPrinter(os.Stdout)

	var product *productform.Product
	if productID != "" {
		product, err = s.client.GetProduct(ctx, productID)
		if err != nil {
			printer.PrintError("Failed to load product", err, catalogapi.GetTroubleshootingHint(err))
			return err
		}
	}

	refs, err := s.client.LoadReferences(ctx)
	if err != nil {
		printer.PrintError("Failed to load categories, sizes and colors", err, catalogapi.GetTroubleshootingHint(err))
		return err
	}
	s.remember()

	res, err := tui.Run(ctx, tui.Config{
		StoreID:     s.target.StoreID,
		Product:     product,
		Categories:  refs.Categories,
		Sizes:       refs.Sizes,
		Colors:      refs.Colors,
		Persistence: s.client,
	})
	if err != nil {
		return err
	}

	if res.Canceled() {
		printer.Println(ui.HintStyle.Render("  No changes saved."))
		return nil
	}
	title := "Done"
	if res.Notice != nil {
		title = res.Notice.Message
	}
	printer.PrintSuccess(title, append(s.params(), ui.Detail{Key: "Next", Value: res.Path}))
	return nil
}

// deleteCmd removes a product after typed confirmation
var deleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product",
	Long: `Delete a product from the store.

You are asked to type DELETE unless --yes is given. Products still
referenced by orders cannot be deleted; remove those orders first.`,
	Example: `  catalogctl delete prod_42 --store store_1

  # Scripted use
  catalogctl delete prod_42 --store store_1 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession()
	if err != nil {
		return err
	}
	id := args[0]

	product, err := s.client.GetProduct(ctx, id)
	if err != nil {
		ui.NewPrinter(cmd.OutOrStdout()).PrintError("Failed to load product", err, catalogapi.GetTroubleshootingHint(err))
		return err
	}

	if !assumeYes {
		warnings := []string{
			fmt.Sprintf("Product %q (%s) will be removed from store %s", product.Name, product.ID, s.target.StoreID),
			"This action cannot be undone",
			"Products referenced by orders cannot be deleted",
		}
		if !ui.ConfirmDestructive(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete product", warnings) {
			return nil
		}
	}

	effects := &cliEffects{}
	ctrl := productform.NewController(productform.Config{
		StoreID:     s.target.StoreID,
		Initial:     product,
		Persistence: s.client,
		Navigator:   effects,
		Notifier:    effects,
	})

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Delete product",
		Command: "catalogctl delete " + id,
		Params:  append(s.params(), ui.Detail{Key: "Product", Value: product.Name}),
		Steps:   []string{"Delete product", "Return to product list"},
		Output:  cmd.OutOrStdout(),
		Hint: func(err error) string {
			if effects.notice != nil && effects.notice.kind == productform.NoticeError {
				return effects.notice.message + "\n" + catalogapi.GetTroubleshootingHint(err)
			}
			return catalogapi.GetTroubleshootingHint(err)
		},
	})

	err = runner.Run(ctx, func(ctx context.Context, step ui.StepFunc) ([]ui.Detail, error) {
		step(1, ui.StepRunning, "")
		if err := ctrl.Delete(ctx); err != nil {
			step(1, ui.StepFailed, catalogapi.GetShortErrorMessage(err))
			return nil, err
		}
		step(1, ui.StepDone, "")
		step(2, ui.StepDone, effects.path)
		return []ui.Detail{{Key: "Result", Value: effects.message()}}, nil
	})
	if err != nil {
		return err
	}
	s.remember()
	return nil
}

// cliEffects collects navigator and notifier calls for non-interactive
// commands.
type cliEffects struct {
	path      string
	refreshed bool
	notice    *cliNotice
}

type cliNotice struct {
	kind    productform.NoticeKind
	message string
}

func (e *cliEffects) GoTo(path string) { e.path = path }
func (e *cliEffects) Refresh()         { e.refreshed = true }

func (e *cliEffects) Notify(kind productform.NoticeKind, message string) {
	e.notice = &cliNotice{kind: kind, message: message}
}

func (e *cliEffects) message() string {
	if e.notice == nil {
		return ""
	}
	return e.notice.message
}

// showCmd displays one product or the store's product list
var showCmd = &cobra.Command{
	Use:   "show [product-id]",
	Short: "Show products",
	Long: `Display one product, or every product in the store when no id is given.

Reference ids are shown alongside their names.`,
	Example: `  # List products
  catalogctl show --store store_1

  # One product as JSON
  catalogctl show prod_42 --store store_1 --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession()
	if err != nil {
		return err
	}
	printer := ui.NewPrinter(cmd.OutOrStdout())

	if len(args) == 0 {
		products, err := s.client.ListProducts(ctx)
		if err != nil {
			printer.PrintError("Failed to list products", err, catalogapi.GetTroubleshootingHint(err))
			return err
		}
		if outputFormat == "json" {
			return printJSON(cmd, products)
		}
		printer.PrintHeader("Products", urls.ProductsPath(s.target.StoreID), s.params())
		if len(products) == 0 {
			printer.Println(ui.HintStyle.Render("  No products."))
			return nil
		}
		rows := make([][]string, 0, len(products))
		for _, p := range products {
			rows = append(rows, []string{
				p.ID,
				p.Name,
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				yesNo(p.IsFeatured),
				yesNo(p.IsArchived),
			})
		}
		printer.PrintTable([]string{"ID", "NAME", "PRICE", "FEATURED", "ARCHIVED"}, rows)
		return nil
	}

	product, err := s.client.GetProduct(ctx, args[0])
	if err != nil {
		printer.PrintError("Failed to load product", err, catalogapi.GetTroubleshootingHint(err))
		return err
	}
	if outputFormat == "json" {
		return printJSON(cmd, product)
	}

	refs, err := s.client.LoadReferences(ctx)
	if err != nil {
		logging.Warn("reference lists unavailable", zap.Error(err))
		refs = &catalogapi.References{}
	}

	details := []ui.Detail{
		{Key: "ID", Value: product.ID},
		{Key: "Name", Value: product.Name},
		{Key: "Price", Value: strconv.FormatFloat(product.Price, 'f', 2, 64)},
		{Key: "Category", Value: refName(refs.Categories, product.CategoryID)},
		{Key: "Size", Value: refName(refs.Sizes, product.SizeID)},
		{Key: "Color", Value: refName(refs.Colors, product.ColorID)},
		{Key: "Featured", Value: yesNo(product.IsFeatured)},
		{Key: "Archived", Value: yesNo(product.IsArchived)},
	}
	for n, img := range product.Images {
		details = append(details, ui.Detail{Key: fmt.Sprintf("Image %d", n+1), Value: img.URL})
	}
	printer.PrintHeader("Product", urls.ProductPath(s.target.StoreID, product.ID), s.params())
	printer.PrintSuccess(product.Name, details)
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func refName(items []productform.ReferenceItem, id string) string {
	for _, item := range items {
		if item.ID == id {
			return fmt.Sprintf("%s (%s)", item.Name, id)
		}
	}
	return id
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
