package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/catalogctl/internal/config"
	"github.com/muurk/catalogctl/internal/discovery"
	"github.com/muurk/catalogctl/internal/ui"
	"github.com/muurk/catalogctl/internal/urls"
)

var (
	scanTimeout int
	scanSave    bool
	setAPIURL   string
)

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configUseCmd)
}

// scanCmd discovers admin servers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for store admin servers on the network",
	Long: `Scan for store admin servers using mDNS/DNS-SD discovery.

Servers advertise ` + discovery.ServiceType + ` with optional TXT records
"path" (API root) and "stores" (comma-separated store ids). With --store
the scan stops at the first server for that store; --save remembers it.`,
	Example: `  # Scan using the configured timeout
  catalogctl scan

  # Find and remember the server for one store
  catalogctl scan --store store_1 --save`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 0, "Scan timeout in seconds (0 uses config)")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "Remember the server found for --store")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = reg.DiscoverTimeout()
	if scanTimeout > 0 {
		scanner.Timeout = time.Duration(scanTimeout) * time.Second
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Scan", "catalogctl scan", []ui.Detail{
		{Key: "Service", Value: discovery.ServiceType},
		{Key: "Timeout", Value: scanner.Timeout.String()},
	})

	if storeID != "" {
		server, err := scanner.FindStore(ctx, storeID)
		if err != nil {
			printer.PrintError("No server found", err, "See "+urls.TroubleshootingGuide)
			return err
		}
		details := serverDetails(server)
		if scanSave {
			reg.TouchStore(storeID, server.BaseURL())
			if err := reg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			details = append(details, ui.Detail{Key: "Saved", Value: "store " + storeID})
		}
		printer.PrintSuccess("Found server for "+storeID, details)
		return nil
	}

	servers, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(servers) == 0 {
		printer.PrintError("No servers found", fmt.Errorf("nothing answered within %s", scanner.Timeout),
			"Ensure the admin server is running and advertises "+discovery.ServiceType+"\n"+
				"Try increasing --scan-timeout, or pass --api to skip discovery")
		return nil
	}

	rows := make([][]string, 0, len(servers))
	for _, s := range servers {
		stores := strings.Join(s.Stores, ",")
		if stores == "" {
			stores = "*"
		}
		rows = append(rows, []string{s.Instance, s.BaseURL(), stores})
	}
	printer.PrintTable([]string{"INSTANCE", "URL", "STORES"}, rows)
	printer.Newline()
	printer.Println(ui.HintStyle.Render("  Use 'catalogctl scan --store <id> --save' to remember a server"))
	return nil
}

func serverDetails(s *discovery.Server) []ui.Detail {
	details := []ui.Detail{
		{Key: "Instance", Value: s.Instance},
		{Key: "Host", Value: s.Hostname},
		{Key: "URL", Value: s.BaseURL()},
	}
	if len(s.Stores) > 0 {
		details = append(details, ui.Detail{Key: "Stores", Value: strings.Join(s.Stores, ", ")})
	}
	return details
}

// configCmd groups config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the catalogctl config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		data, err := yaml.Marshal(reg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// configUseCmd sets the default store
var configUseCmd = &cobra.Command{
	Use:   "use <store-id>",
	Short: "Set the default store",
	Example: `  catalogctl config use store_1
  catalogctl config use store_1 --server http://admin.local:3000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		useStore(reg, args[0], setAPIURL)
		if err := reg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		details := []ui.Detail{{Key: "Default", Value: args[0]}}
		if known := knownStores(reg); len(known) > 0 {
			details = append(details, ui.Detail{Key: "Known", Value: strings.Join(known, ", ")})
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Config updated", details)
		return nil
	},
}

func init() {
	configUseCmd.Flags().StringVar(&setAPIURL, "server", "", "Admin API base URL to remember for the store")
}

// useStore makes id the default store, remembering apiURL for it when set.
func useStore(reg *config.Registry, id, apiURL string) {
	if reg.Preferences == nil {
		reg.Preferences = config.NewRegistry().Preferences
	}
	reg.Preferences.DefaultStore = id
	reg.TouchStore(id, apiURL)
}

func knownStores(reg *config.Registry) []string {
	ids := make([]string, 0, len(reg.Stores))
	for id := range reg.Stores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
