package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	OData           OData           `mapstructure:",squash"`
	Pricing         Pricing         `mapstructure:",squash"`
	Finance         Finance         `mapstructure:",squash"`
	Portfolio       Portfolio       `mapstructure:",squash"`
	SnapshotRefresh SnapshotRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// OData décrit la connexion au flux ERPsim
type OData struct {
	BaseURL        string `mapstructure:"odata_base_url"`
	Username       string `mapstructure:"odata_username"`
	Password       string `mapstructure:"odata_password"`
	CompanyCode    string `mapstructure:"company_code"`
	Plant          string `mapstructure:"plant"`
	TimeoutSeconds int    `mapstructure:"odata_timeout_seconds"`
	SkipTLSVerify  bool   `mapstructure:"odata_skip_tls_verify"`
	SmallViewTop   int    `mapstructure:"odata_small_view_top"`
	LargeViewTop   int    `mapstructure:"odata_large_view_top"`
}

// Pricing porte les seuils du moteur de recommandation de prix.
// Exposés en configuration pour que les tests puissent les substituer.
type Pricing struct {
	HighVelocity    float64 `mapstructure:"pricing_high_velocity"`
	LowVelocity     float64 `mapstructure:"pricing_low_velocity"`
	HighStock       float64 `mapstructure:"pricing_high_stock"`
	LowStock        float64 `mapstructure:"pricing_low_stock"`
	GapBandPct      float64 `mapstructure:"pricing_gap_band_pct"`
	TopN            int     `mapstructure:"pricing_top_n"`
	AlignDownFactor float64 `mapstructure:"pricing_align_down_factor"`
	LiquidateFactor float64 `mapstructure:"pricing_liquidate_factor"`
}

// Finance porte les constantes métier du moteur financier.
// Les valeurs sont des hypothèses ERPsim reprises telles quelles, sans re-dérivation.
type Finance struct {
	UnitValue          float64 `mapstructure:"finance_unit_value"`
	FreeStorageUnits   float64 `mapstructure:"finance_free_storage_units"`
	StorageTrancheSize float64 `mapstructure:"finance_storage_tranche_size"`
	StorageTrancheFee  float64 `mapstructure:"finance_storage_tranche_fee"`
	SetupUnitsPerHour  float64 `mapstructure:"finance_setup_units_per_hour"`
	SetupMarginPerUnit float64 `mapstructure:"finance_setup_margin_per_unit"`
	SetupInvestment    float64 `mapstructure:"finance_setup_investment"`
	ROISentinelDays    float64 `mapstructure:"finance_roi_sentinel_days"`
	InvestBelowDays    float64 `mapstructure:"finance_invest_below_days"`
	CashFloor          float64 `mapstructure:"finance_cash_floor"`
	MinCashToPayDebt   float64 `mapstructure:"finance_min_cash_to_pay_debt"`
}

type Portfolio struct {
	MixTopProducts int `mapstructure:"portfolio_mix_top_products"`
}

type SnapshotRefresh struct {
	IntervalSeconds int  `mapstructure:"snapshot_refresh_interval_seconds"`
	Enabled         bool `mapstructure:"snapshot_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("ODATA_BASE_URL", "https://sapvm2.hec.ca:8001/odata/300")
	viper.SetDefault("ODATA_USERNAME", "your_username")
	viper.SetDefault("ODATA_PASSWORD", "your_password")
	viper.SetDefault("COMPANY_CODE", "H2")
	viper.SetDefault("PLANT", "1000")
	viper.SetDefault("ODATA_TIMEOUT_SECONDS", 30)
	viper.SetDefault("ODATA_SKIP_TLS_VERIFY", true) // Le serveur de simulation a un certificat auto-signé
	viper.SetDefault("ODATA_SMALL_VIEW_TOP", 1000)
	viper.SetDefault("ODATA_LARGE_VIEW_TOP", 10000)

	// Seuils pricing
	viper.SetDefault("PRICING_HIGH_VELOCITY", 50.0)
	viper.SetDefault("PRICING_LOW_VELOCITY", 10.0)
	viper.SetDefault("PRICING_HIGH_STOCK", 500.0)
	viper.SetDefault("PRICING_LOW_STOCK", 100.0)
	viper.SetDefault("PRICING_GAP_BAND_PCT", 1.0)
	viper.SetDefault("PRICING_TOP_N", 5)
	viper.SetDefault("PRICING_ALIGN_DOWN_FACTOR", 0.99) // Légèrement sous le marché
	viper.SetDefault("PRICING_LIQUIDATE_FACTOR", 0.95)

	// Constantes finance (règles ERPsim)
	viper.SetDefault("FINANCE_UNIT_VALUE", 1.38) // Coût standard moyen d'une unité de muesli
	viper.SetDefault("FINANCE_FREE_STORAGE_UNITS", 250_000.0)
	viper.SetDefault("FINANCE_STORAGE_TRANCHE_SIZE", 50_000.0)
	viper.SetDefault("FINANCE_STORAGE_TRANCHE_FEE", 500.0)
	viper.SetDefault("FINANCE_SETUP_UNITS_PER_HOUR", 666.0) // 16 000 / 24
	viper.SetDefault("FINANCE_SETUP_MARGIN_PER_UNIT", 1.50)
	viper.SetDefault("FINANCE_SETUP_INVESTMENT", 50_000.0)
	viper.SetDefault("FINANCE_ROI_SENTINEL_DAYS", 999.0)
	viper.SetDefault("FINANCE_INVEST_BELOW_DAYS", 15.0)
	viper.SetDefault("FINANCE_CASH_FLOOR", 500_000.0)
	viper.SetDefault("FINANCE_MIN_CASH_TO_PAY_DEBT", 1_000_000.0)

	viper.SetDefault("PORTFOLIO_MIX_TOP_PRODUCTS", 6)

	viper.SetDefault("SNAPSHOT_REFRESH_INTERVAL_SECONDS", 30)
	viper.SetDefault("SNAPSHOT_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Charger d'abord le fichier .env via godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Variables chargées par godotenv (viper n'a pas pu lire .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile tente de charger le fichier .env depuis les emplacements habituels
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Impossible d'obtenir le répertoire courant:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Fichier .env chargé depuis:", location)
			return
		}
	}

	logrus.Debug("Aucun fichier .env trouvé, utilisation des variables d'environnement")
}
