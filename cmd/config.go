package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	OrdersFeedPath string
	RosterPath     string

	BidWindow          time.Duration
	ConfirmationWindow time.Duration
	AnnounceInterval   time.Duration
	EarningsRetention  time.Duration
	BidProbability     float64
	CourierCount       int
}
