package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/docbridge/docbridge/pkg/config"
)

// ConfigCmd groups configuration inspection commands.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management and diagnostics",
	}

	cmd.AddCommand(
		configShowCmd(),
		configEnvCmd(),
	)

	return cmd
}

// configShowCmd shows the effective configuration with source information.
func configShowCmd() *cobra.Command {
	var (
		format      string
		showSources bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration values and their sources",
		Long: `Display the effective configuration after merging defaults, the YAML file,
CLI flags, and environment variables. With --sources, each value is annotated
with the source that provided it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, format, showSources)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (json, yaml, table)")
	cmd.Flags().BoolVarP(&showSources, "sources", "s", false, "Show configuration sources")

	return cmd
}

// configEnvCmd lists the environment variables the loader recognizes.
func configEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderEnvMappings(cmd.OutOrStdout())
		},
	}
}

func renderEnvMappings(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "VARIABLE\tCONFIG KEY\t")
	for _, m := range config.EnvMappings() {
		note := ""
		if config.IsSensitiveKey(m.Key) {
			note = "(sensitive)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Var, m.Key, note)
	}

	return nil
}

func runConfigShow(cmd *cobra.Command, format string, showSources bool) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	cfg, service, err := loadConfig(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	return formatConfigOutput(cmd.OutOrStdout(), cfg, service, format, showSources)
}

// formatConfigOutput renders the configuration in the requested format.
// Sensitive values are redacted in every format.
func formatConfigOutput(
	w io.Writer,
	cfg *config.Config,
	service config.Service,
	format string,
	showSources bool,
) error {
	switch format {
	case "json":
		return outputJSON(w, cfg, service, showSources)
	case "yaml":
		return outputYAML(w, cfg, service, showSources)
	case "table":
		return outputTable(w, cfg, service, showSources)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func outputJSON(w io.Writer, cfg *config.Config, service config.Service, showSources bool) error {
	output := make(map[string]any)
	output["config"] = cfg
	if showSources {
		output["sources"] = configSources(cfg, service)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputYAML(w io.Writer, cfg *config.Config, service config.Service, showSources bool) error {
	output := make(map[string]any)
	output["config"] = cfg
	if showSources {
		output["sources"] = configSources(cfg, service)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(output)
}

func outputTable(w io.Writer, cfg *config.Config, service config.Service, showSources bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	flatMap := flattenConfig(cfg)
	keys := make([]string, 0, len(flatMap))
	for k := range flatMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if showSources {
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
		fmt.Fprintln(tw, "---\t-----\t------")
	} else {
		fmt.Fprintln(tw, "KEY\tVALUE")
		fmt.Fprintln(tw, "---\t-----")
	}

	for _, key := range keys {
		if showSources {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", key, flatMap[key], service.GetSource(key))
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", key, flatMap[key])
		}
	}

	return nil
}

// configSources maps every known configuration key to the source that set it.
func configSources(cfg *config.Config, service config.Service) map[string]config.SourceType {
	sources := make(map[string]config.SourceType)
	for key := range flattenConfig(cfg) {
		sources[key] = service.GetSource(key)
	}
	return sources
}

// flattenConfig converts the configuration to a flat key map for table
// display. Sensitive values pass through their redacting String method.
func flattenConfig(cfg *config.Config) map[string]string {
	result := make(map[string]string)
	flattenServerConfig(cfg, result)
	flattenDatabaseConfig(cfg, result)
	flattenRegistryConfig(cfg, result)
	flattenImportConfig(cfg, result)
	flattenLogConfig(cfg, result)
	return result
}

func flattenServerConfig(cfg *config.Config, result map[string]string) {
	result["server.host"] = cfg.Server.Host
	result["server.port"] = fmt.Sprintf("%d", cfg.Server.Port)
	result["server.cors_enabled"] = fmt.Sprintf("%v", cfg.Server.CORSEnabled)
	result["server.cors.allowed_origins"] = fmt.Sprintf("%v", cfg.Server.CORS.AllowedOrigins)
	result["server.cors.allow_credentials"] = fmt.Sprintf("%v", cfg.Server.CORS.AllowCredentials)
	result["server.cors.max_age"] = fmt.Sprintf("%d", cfg.Server.CORS.MaxAge)
	result["server.timeout"] = cfg.Server.Timeout.String()
}

func flattenDatabaseConfig(cfg *config.Config, result map[string]string) {
	result["database.uri"] = cfg.Database.URI.String()
	result["database.name"] = cfg.Database.Name
	result["database.collection"] = cfg.Database.Collection
	result["database.connect_timeout"] = cfg.Database.ConnectTimeout.String()
}

func flattenRegistryConfig(cfg *config.Config, result map[string]string) {
	result["registry.database"] = cfg.Registry.Database
	result["registry.collection"] = cfg.Registry.Collection
}

func flattenImportConfig(cfg *config.Config, result map[string]string) {
	result["import.fetch_timeout"] = cfg.Import.FetchTimeout.String()
	result["import.max_rows"] = fmt.Sprintf("%d", cfg.Import.MaxRows)
}

func flattenLogConfig(cfg *config.Config, result map[string]string) {
	result["log.level"] = cfg.Log.Level
	result["log.json"] = fmt.Sprintf("%v", cfg.Log.JSON)
	result["log.source"] = fmt.Sprintf("%v", cfg.Log.Source)
}
