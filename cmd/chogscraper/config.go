package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"chogscraper/pkg/config"
	"chogscraper/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage chogscraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (CHOGSCRAPER_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'chogscraper.yaml'
unless a different path is specified with the --config flag.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after merging defaults, the
configuration file, .env files, and environment variables.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate the effective configuration.

This command checks:
  - YAML syntax
  - Required fields
  - Value types and ranges
  - Output directory accessibility`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

const exampleConfig = `# chogscraper configuration file
#
# Every option can also be set with an environment variable prefixed with
# CHOGSCRAPER_, for example CHOGSCRAPER_LIMIT or CHOGSCRAPER_OUTPUT_DIR.

# Search service
search:
  # Base URL of the JSON search service
  endpoint: "http://localhost:8080"

  # Search expression; platform filters are appended below
  query: "(#monad #chog nft) OR #chog"

  # Append filter:images
  images_only: true

  # Append min_faves:N when N > 0
  min_faves: 1

  # Maximum number of search results to examine (not images)
  limit: 300

  # Pause after every result that contained photos
  result_delay: 500ms

  # Search request budget
  requests_per_minute: 60

  timeout: 30s

# Image downloads
download:
  # Directory images are saved to
  directory: "assets"

  # Browser-like identification sent with every download
  user_agent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

  timeout: 30s

  # Bytes written per chunk while streaming
  chunk_size: 8192

  # Pause after every download attempt
  delay: 500ms

# Catalog of saved images
output:
  file: "chog_dynamic.json"

# Record fields
record:
  style: "chog-nft-art"
  chog_tag: "#chog"
  monad_tag: "#monad"

  # Characters of post text kept in "content"
  content_length: 100

# Logging configuration
logging:
  # Log level: debug, info, warn, error, disabled
  level: "error"

  # Log file path (optional)
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = "chogscraper.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Point search.endpoint at your search service")
	fmt.Println("2. Run 'chogscraper config validate' to check the configuration")
	fmt.Println("3. Start collecting with 'chogscraper fetch'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (CHOGSCRAPER_*)")
	fmt.Println("3. .env files")
	if configFile != "" {
		fmt.Printf("4. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("4. Configuration file: (searched in default locations)")
	}
	fmt.Println("5. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		ui.PrintInfo("Validating configuration", configFile)
	}

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Download.Directory, 0755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Endpoint: %s\n", cfg.Search.Endpoint)
	fmt.Printf("  Query: %s\n", cfg.Search.Query)
	fmt.Printf("  Limit: %d results\n", cfg.Search.Limit)
	fmt.Printf("  Output directory: %s\n", cfg.Download.Directory)
	fmt.Printf("  Catalog: %s\n", cfg.Output.File)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
	return nil
}
