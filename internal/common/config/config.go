// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	AWS        AWSConfig        `mapstructure:"aws"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Escalation EscalationConfig `mapstructure:"escalation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	ReadTimeout    int    `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"`   // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds, per-turn budget
}

// AWSConfig holds settings for every managed AWS backend the service talks to.
type AWSConfig struct {
	Region string `mapstructure:"region"`

	QBusiness struct {
		ApplicationID string `mapstructure:"application_id"`
	} `mapstructure:"qbusiness"`

	DynamoDB struct {
		TableName string `mapstructure:"table_name"`
	} `mapstructure:"dynamodb"`

	SES struct {
		Enabled     bool   `mapstructure:"enabled"`
		SourceEmail string `mapstructure:"source_email"`
		HelpDesk    string `mapstructure:"help_desk_email"`
	} `mapstructure:"ses"`

	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`

	Translate struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"translate"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ChatConfig holds tunables for the conversation pipeline.
type ChatConfig struct {
	// Answers scoring below this are replaced by the fallback affordance.
	ConfidenceThreshold int `mapstructure:"confidence_threshold"`
	// Conversation snapshots expire after this many days in both stores.
	RetentionDays   int    `mapstructure:"retention_days"`
	DefaultLanguage string `mapstructure:"default_language"`
}

// EscalationConfig holds settings for the follow-up hand-off channel.
type EscalationConfig struct {
	CCRequester bool `mapstructure:"cc_requester"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
