package cmd

import "time"

// UnitOfWorkMode selects the transaction strategy at startup.
const (
	UnitOfWorkModeTransactional = "transactional"
	UnitOfWorkModeBestEffort    = "best-effort"
)

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	SweepSchedule  string
	OrderStaleness time.Duration
	UnitOfWorkMode string
}
