package database

// Config holds configuration for the optional relational snapshot store.
type Config struct {
	// Driver selects the snapshot backend: json (flat file), sqlite or mysql.
	Driver string `mapstructure:"driver" default:"json"`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// Name is the database name for mysql, or the file path for sqlite.
	Name string `mapstructure:"name" default:"fansly-backup.db"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// UsesDatabase reports whether the configured driver needs a SQL connection.
func (c Config) UsesDatabase() bool {
	return c.Driver == DriverSQLite || c.Driver == DriverMySQL
}
