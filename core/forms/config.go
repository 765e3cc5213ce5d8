package forms

// Config holds the Nextcloud Forms connection.
type Config struct {
	// URL is the Nextcloud base URL, e.g. https://cloud.example.org. Empty disables the export step.
	URL string `mapstructure:"url" default:""`
	// User is the Nextcloud account that owns the form.
	User string `mapstructure:"user" default:""`
	// Password is the account password or an app password.
	Password string `mapstructure:"password" default:""`
	// FormHash identifies the registration form.
	FormHash string `mapstructure:"form_hash" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether the export can be fetched.
func (c Config) Enabled() bool {
	return c.URL != "" && c.FormHash != ""
}
