package database

// Config holds configuration for the run ledger database.
type Config struct {
	// Driver is the database driver (mysql, sqlite). Empty disables the ledger.
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"elternaccounts.db"`
	// TimeoutSeconds bounds connection setup, I/O and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Enabled reports whether a ledger database is configured.
func (c Config) Enabled() bool {
	return c.Driver != ""
}
