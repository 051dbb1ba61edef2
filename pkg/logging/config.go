package logging

const (
	BaseDataDir = "data"
	LogsDir     = "logs"
)

type LogLevel string

const (
	Development LogLevel = "development" // prints debug and above
	Production  LogLevel = "production"  // prints info and above
)

// ProcessName type to ensure valid process names
type ProcessName string

const (
	DatabaseProcess         ProcessName = "database"
	PaymentSchedulerProcess ProcessName = "payment-scheduler"
	DeployerProcess         ProcessName = "deployer"
	CliProcess              ProcessName = "cli"
)

type LoggerConfig struct {
	LogDir      string
	ProcessName ProcessName
	Environment LogLevel
}

func NewDefaultConfig(processName ProcessName) LoggerConfig {
	return LoggerConfig{
		LogDir:      BaseDataDir,
		ProcessName: processName,
		Environment: Development,
	}
}
