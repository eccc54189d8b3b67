package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_RejectsBadWeightOrdering(t *testing.T) {
	v := viper.New()
	v.Set("w_avail", 1)
	v.Set("w_meet", 4)
	v.Set("w_section", 8)
	_, err := Load(v, "")
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveTimeBudget(t *testing.T) {
	v := viper.New()
	v.Set("time_budget_s", 0)
	_, err := Load(v, "")
	assert.Error(t, err)
}

func TestTimeBudget_ConvertsSecondsToDuration(t *testing.T) {
	cfg := Config{TimeBudgetS: 90}
	assert.Equal(t, 90.0, cfg.TimeBudget().Seconds())
}
