package config

import (
	"reflect"
	"strings"

	"elternaccounts/core/database"
	"elternaccounts/core/forms"
	"elternaccounts/core/logger"
	"elternaccounts/core/reconcile"
	"elternaccounts/core/server"
	"elternaccounts/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run ledger.
	Database database.Config `mapstructure:"database"`
	// Forms holds the Nextcloud Forms connection.
	Forms forms.Config `mapstructure:"forms"`
	// Match holds the matching thresholds and worker settings.
	Match reconcile.Config `mapstructure:"match"`
	// Accounts holds the object layout of a storage-backed run.
	Accounts Accounts `mapstructure:"accounts"`
}

// Accounts describes where a run reads its inputs and writes its outputs.
type Accounts struct {
	// SheetKey is the master submission sheet.
	SheetKey string `mapstructure:"sheet_key" default:"forms/elternaccounts.csv"`
	// RegistryKey is the registry export.
	RegistryKey string `mapstructure:"registry_key" default:"registry/export.csv"`
	// AuditKey receives the control output.
	AuditKey string `mapstructure:"audit_key" default:"output/elternaccounts-control.csv"`
	// AccountsKey receives the accounts to create.
	AccountsKey string `mapstructure:"accounts_key" default:"output/elternaccounts.csv"`
	// BackupPrefix is prepended to sheet backups.
	BackupPrefix string `mapstructure:"backup_prefix" default:"backup/"`
	// MappingFile is an optional username mapping (yaml, json or toml).
	MappingFile string `mapstructure:"mapping_file" default:""`
	// LockFile guards against concurrent runs on the same host.
	LockFile string `mapstructure:"lock_file" default:"elternaccounts.lock"`
	// OutputDir additionally receives local copies of both outputs when set.
	OutputDir string `mapstructure:"output_dir" default:""`
	// MergeForms fetches the forms export and merges it into the sheet before matching.
	MergeForms bool `mapstructure:"merge_forms" default:"true"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MATCH_ACCEPT_THRESHOLD -> match.accept_threshold)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
