package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func requiredEnv() map[string]string {
	return map[string]string{
		"HTTP_PORT":   "8080",
		"DB_HOST":     "localhost",
		"DB_PORT":     "5432",
		"DB_USER":     "parcel",
		"DB_PASSWORD": "secret",
		"DB_NAME":     "parcel",
		"JWT_SECRET":  "jwt-secret",
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	c, err := ConfigFromEnv(env(requiredEnv()))

	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSslMode)
	assert.Equal(t, defaultReconcileSchedule, c.ReconcileSchedule)
	assert.Equal(t, defaultRelaySchedule, c.RelaySchedule)
	assert.Equal(t, defaultJobBatchSize, c.JobBatchSize)
	assert.Zero(t, c.PriceBaseFeeCents)
	assert.Equal(t, "host=localhost port=5432 user=parcel password=secret dbname=parcel sslmode=disable", c.DSN())
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	values := requiredEnv()
	values["PRICE_BASE_FEE"] = "250"
	values["JOB_BATCH_SIZE"] = "20"
	values["RELAY_SCHEDULE"] = "* * * * * *"

	c, err := ConfigFromEnv(env(values))

	require.NoError(t, err)
	assert.Equal(t, int64(250), c.PriceBaseFeeCents)
	assert.Equal(t, 20, c.JobBatchSize)
	assert.Equal(t, "* * * * * *", c.RelaySchedule)
}

func TestConfigFromEnv_ReportsAllMissing(t *testing.T) {
	_, err := ConfigFromEnv(env(map[string]string{"HTTP_PORT": "8080"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST, DB_NAME, DB_PORT, DB_USER, JWT_SECRET")
}

func TestConfigFromEnv_BadNumber(t *testing.T) {
	values := requiredEnv()
	values["PRICE_BASE_FEE"] = "ten"

	_, err := ConfigFromEnv(env(values))

	require.ErrorContains(t, err, "PRICE_BASE_FEE")
}

func TestConfig_NegativeBaseFee(t *testing.T) {
	values := requiredEnv()
	values["PRICE_BASE_FEE"] = "-1"

	_, err := ConfigFromEnv(env(values))

	require.ErrorContains(t, err, "must not be negative")
}
