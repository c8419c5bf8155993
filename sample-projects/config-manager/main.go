package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	strukt "github.com/reoring/strukt"
	"github.com/reoring/strukt/dsl"
	"github.com/reoring/strukt/kindfile"
	"github.com/reoring/strukt/rule"
	"gopkg.in/yaml.v3"
)

// ConfigManager handles configuration loading and validation
type ConfigManager struct {
	kind *strukt.Kind
}

func NewConfigManager() *ConfigManager {
	// Define comprehensive configuration kind using the strukt DSL
	kind := dsl.Kind("app-config").
		Field("app", dsl.Object().
			Field("name", dsl.String()).
			Field("version", dsl.String()).
			Field("environment", dsl.String()).
			Field("port", dsl.Int()).
			Field("host", dsl.String()).
			Field("tls", dsl.Object().
				Field("enabled", dsl.Bool()).
				Field("certFile", dsl.String()).
				Field("keyFile", dsl.String()).
				Build()).
			Field("metadata", dsl.MapOf(strukt.String, dsl.String())).
			Build()).
		Field("database", dsl.Object().
			Field("host", dsl.String()).
			Field("port", dsl.Int()).
			Field("database", dsl.String()).
			Field("username", dsl.String()).
			Field("password", dsl.String()).
			Field("maxConns", dsl.Int()).
			Field("sslMode", dsl.String()).
			Build()).
		Field("logging", dsl.Object().
			Field("level", dsl.String()).
			Field("format", dsl.String()).
			Field("output", dsl.String()).
			Build()).
		Field("features", dsl.MapOf(strukt.String, dsl.Bool())).
		Require("app.name", "app.version", "database.host", "database.database", "database.username").
		Default("app.environment", "development").
		Default("app.port", 8080).
		Default("app.host", "0.0.0.0").
		Default("app.tls.enabled", false).
		Default("database.port", 5432).
		Default("database.maxConns", 10).
		Default("database.sslMode", "prefer").
		Default("logging.level", "info").
		Default("logging.format", "json").
		Default("logging.output", "stdout").
		Validate("app.name", rule.NonEmpty()).
		Validate("app.port", rule.Range(1, 65535)).
		Validate("database.port", rule.Range(1, 65535)).
		Validate("database.maxConns", rule.Min(1)).
		Validate("logging.level", rule.In("debug", "info", "warn", "error")).
		Validate("logging.format", rule.In("json", "text")).
		Validate("logging.output", rule.In("stdout", "stderr", "file")).
		Mode(strukt.CollectAll).
		MustBuild()

	return &ConfigManager{
		kind: kind,
	}
}

func (cm *ConfigManager) LoadConfig(env string) (strukt.Document, error) {
	ctx := context.Background()

	// Load base configuration
	baseData, err := cm.loadFile("base.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load base config: %w", err)
	}

	// Expand environment variables in base config
	baseData = cm.expandEnvVars(baseData)

	doc, err := kindfile.DecodeDocumentYAML(baseData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base config: %w", err)
	}

	// Load environment-specific configuration if it exists
	envFile := fmt.Sprintf("%s.yaml", env)
	if cm.fileExists(envFile) {
		envData, err := cm.loadFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", env, err)
		}

		envData = cm.expandEnvVars(envData)

		overlay, err := kindfile.DecodeDocumentYAML(envData)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s config: %w", env, err)
		}

		// Merge configurations (env config overrides base)
		doc = cm.mergeDocs(doc, overlay)
	}

	// Validate merged document; the kind is bound to collect-all, so every
	// problem comes back in one pass
	if err := cm.kind.Validate(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (cm *ConfigManager) ValidateConfig(env string) error {
	doc, err := cm.LoadConfig(env)
	if vs, ok := strukt.AsViolations(err); ok {
		fmt.Fprintf(os.Stderr, "❌ %d problem(s) in configuration for environment '%s':\n", len(vs), env)
		for _, v := range vs {
			fmt.Fprintf(os.Stderr, "  [%s] %s: %s\n", v.Code, v.Path, v.Message)
			if v.Hint != "" {
				fmt.Fprintf(os.Stderr, "        hint: %s\n", v.Hint)
			}
		}
		return fmt.Errorf("configuration invalid")
	}
	if err != nil {
		return err
	}

	// Cross-field validation the kind cannot express
	tlsEnabled, _ := doc.At("app.tls.enabled")
	if on, _ := tlsEnabled.(bool); on {
		certFile, _ := doc.At("app.tls.certFile")
		keyFile, _ := doc.At("app.tls.keyFile")
		cs, _ := certFile.(string)
		ks, _ := keyFile.(string)
		if cs == "" || ks == "" {
			return fmt.Errorf("TLS enabled but cert/key files not specified")
		}
	}

	fmt.Printf("✅ Configuration for environment '%s' is valid!\n", env)
	return nil
}

func (cm *ConfigManager) ShowConfig(env string, maskSecrets bool) error {
	doc, err := cm.LoadConfig(env)
	if err != nil {
		return err
	}

	if maskSecrets {
		doc = cm.maskSecrets(doc)
	}

	data, err := yaml.Marshal(map[string]any(doc))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Printf("📋 Configuration for environment: %s\n", env)
	fmt.Println("=" + strings.Repeat("=", len(env)+25))
	fmt.Print(string(data))

	return nil
}

// ExportKind prints the configuration kind as a declaration file, the same
// form LoadYAML accepts.
func (cm *ConfigManager) ExportKind() error {
	data, diag, err := kindfile.ExportYAML(cm.kind)
	if err != nil {
		return fmt.Errorf("failed to export kind: %w", err)
	}
	for _, w := range diag.Warnings() {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", w)
	}

	fmt.Println("📋 Configuration kind declaration:")
	fmt.Print(string(data))
	return nil
}

func (cm *ConfigManager) GenerateTemplate() error {
	// Generate template configurations
	templates := map[string]string{
		"base.yaml": `# Base configuration (common settings)
app:
  name: "MyWebApp"
  version: "1.0.0"
  host: "0.0.0.0"
  port: 8080
  tls:
    enabled: false
  metadata:
    author: "Your Name"
    description: "Web application"

database:
  host: "localhost"
  port: 5432
  database: "myapp"
  username: "postgres"
  maxConns: 10
  sslMode: "prefer"

logging:
  level: "info"
  format: "json"
  output: "stdout"

features:
  analytics: true
  debugging: false
`,
		"development.yaml": `# Development environment overrides
app:
  environment: "development"
  port: 3000

database:
  password: "${DB_PASSWORD:-dev_password}"
  sslMode: "disable"

logging:
  level: "debug"

features:
  debugging: true
`,
		"production.yaml": `# Production environment overrides
app:
  environment: "production"
  port: 80
  tls:
    enabled: true
    certFile: "${TLS_CERT_FILE}"
    keyFile: "${TLS_KEY_FILE}"

database:
  host: "${DB_HOST}"
  password: "${DB_PASSWORD}"
  maxConns: 50
  sslMode: "require"

logging:
  level: "warn"
  output: "${LOG_OUTPUT:-stdout}"

features:
  debugging: false
`,
	}

	for filename, content := range templates {
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
		fmt.Printf("📝 Generated %s\n", filename)
	}

	fmt.Println("✅ Template configuration files generated!")
	fmt.Println("\n📖 Next steps:")
	fmt.Println("1. Edit the configuration files as needed")
	fmt.Println("2. Set required environment variables")
	fmt.Println("3. Validate with: go run . validate --env=development")

	return nil
}

func (cm *ConfigManager) loadFile(filename string) ([]byte, error) {
	if !cm.fileExists(filename) {
		return nil, fmt.Errorf("file %s does not exist", filename)
	}
	return os.ReadFile(filename)
}

func (cm *ConfigManager) fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func (cm *ConfigManager) expandEnvVars(data []byte) []byte {
	content := string(data)

	// Match ${VAR} and ${VAR:-default} patterns
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	result := re.ReplaceAllStringFunc(content, func(match string) string {
		// Remove ${ and }
		varExpr := match[2 : len(match)-1]

		// Check for default value syntax
		if strings.Contains(varExpr, ":-") {
			parts := strings.SplitN(varExpr, ":-", 2)
			varName := parts[0]
			defaultValue := parts[1]

			if value := os.Getenv(varName); value != "" {
				return value
			}
			return defaultValue
		}

		// Simple variable substitution
		return os.Getenv(varExpr)
	})

	return []byte(result)
}

// mergeDocs deep-merges override into base. Mappings merge key by key;
// everything else the override wins.
func (cm *ConfigManager) mergeDocs(base, override strukt.Document) strukt.Document {
	out := base.Clone()
	for key, ov := range override {
		bm, bok := out[key].(map[string]any)
		om, ook := ov.(map[string]any)
		if bok && ook {
			out[key] = map[string]any(cm.mergeDocs(bm, om))
			continue
		}
		out[key] = ov
	}
	return out
}

func (cm *ConfigManager) maskSecrets(doc strukt.Document) strukt.Document {
	masked := doc.Clone()

	// Mask sensitive information
	for _, path := range []string{"database.password", "app.tls.keyFile"} {
		if v, ok := masked.At(path); ok {
			if s, _ := v.(string); s != "" {
				_ = masked.Set(path, "***masked***")
			}
		}
	}

	return masked
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cm := NewConfigManager()
	command := os.Args[1]

	switch command {
	case "validate":
		env := getEnvFlag()
		if err := cm.ValidateConfig(env); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Validation failed: %v\n", err)
			os.Exit(1)
		}

	case "show":
		env := getEnvFlag()
		maskSecrets := !getBoolFlag("--no-mask")
		if err := cm.ShowConfig(env, maskSecrets); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Show failed: %v\n", err)
			os.Exit(1)
		}

	case "generate":
		if getBoolFlag("--template") {
			if err := cm.GenerateTemplate(); err != nil {
				fmt.Fprintf(os.Stderr, "❌ Generate failed: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Fprintf(os.Stderr, "❌ Use --template flag to generate template files\n")
			os.Exit(1)
		}

	case "export":
		if err := cm.ExportKind(); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Export failed: %v\n", err)
			os.Exit(1)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`🎯 strukt Config Manager Sample

Usage: %s <command> [flags...]

Commands:
  validate [--env=<env>]          Validate configuration for environment
  show [--env=<env>] [--no-mask]  Show configuration (default: mask secrets)
  generate --template             Generate template configuration files
  export                          Show the configuration kind declaration

Flags:
  --env=<environment>      Environment (default: development)
  --no-mask               Don't mask sensitive information
  --template              Generate template files

Examples:
  %s validate --env=development
  %s validate --env=production
  %s show --env=production --no-mask
  %s generate --template
  %s export

Environment Files:
  base.yaml               Base configuration (required)
  <environment>.yaml      Environment-specific overrides (optional)

`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
}

func getEnvFlag() string {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "--env=") {
			return strings.TrimPrefix(arg, "--env=")
		}
	}
	return "development"
}

func getBoolFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
