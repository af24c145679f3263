package conf

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

// CatalogConfig contains the localized strings loaded from YAML.
// Missing fields fall back to the built-in English catalog, so a
// locale file only needs to override what it translates.
type CatalogConfig struct {
	Schedule ScheduleStrings   `yaml:"schedule"`
	Warnings WarningStrings    `yaml:"warnings"`
	Errors   map[string]string `yaml:"errors"`
}

// ScheduleStrings contains schedule summary format strings
type ScheduleStrings struct {
	EveryNDays      string   `yaml:"every_n_days"`
	EveryDay        string   `yaml:"every_day"`
	OnWeekday       string   `yaml:"on_weekday"`
	OnDayOfMonth    string   `yaml:"on_day_of_month"`
	OnDateOfYear    string   `yaml:"on_date_of_year"`
	OnLunarDate     string   `yaml:"on_lunar_date"`
	OnLunarLeapDate string   `yaml:"on_lunar_leap_date"`
	OneTimeOn       string   `yaml:"one_time_on"`
	SameDayAsAnchor string   `yaml:"same_day_as_anchor"`
	DaysAfterAnchor string   `yaml:"days_after_anchor"`
	AtTime          string   `yaml:"at_time"`
	RepeatSuffix    string   `yaml:"repeat_suffix"`
	WeekdayNames    []string `yaml:"weekday_names"`
}

// WarningStrings contains skip warning texts
type WarningStrings struct {
	ShortMonth     string `yaml:"short_month"`
	NonLeapYear    string `yaml:"non_leap_year"`
	LunarLeapMonth string `yaml:"lunar_leap_month"`
}

// LoadCatalogConfig loads the locale catalog from a YAML file
func LoadCatalogConfig(configPath string) (*CatalogConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/catalog.yaml",
			"./configs/catalog.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "catalog.yaml"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(homeDir, ".cronpost", "catalog.yaml"))
		}
	}

	var data []byte
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}

	if data == nil {
		// No file found; built-in English strings apply
		return &CatalogConfig{}, nil
	}

	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &CatalogConfig{}, err
	}
	return &cfg, nil
}

// ToCatalog merges the loaded strings over the built-in catalog.
func (c *CatalogConfig) ToCatalog() *domain.Catalog {
	cat := domain.DefaultCatalog
	if c == nil {
		return &cat
	}

	s := c.Schedule
	setIf(&cat.EveryNDays, s.EveryNDays)
	setIf(&cat.EveryDay, s.EveryDay)
	setIf(&cat.OnWeekday, s.OnWeekday)
	setIf(&cat.OnDayOfMonth, s.OnDayOfMonth)
	setIf(&cat.OnDateOfYear, s.OnDateOfYear)
	setIf(&cat.OnLunarDate, s.OnLunarDate)
	setIf(&cat.OnLunarLeapDate, s.OnLunarLeapDate)
	setIf(&cat.OneTimeOn, s.OneTimeOn)
	setIf(&cat.SameDayAsAnchor, s.SameDayAsAnchor)
	setIf(&cat.DaysAfterAnchor, s.DaysAfterAnchor)
	setIf(&cat.AtTime, s.AtTime)
	setIf(&cat.RepeatSuffix, s.RepeatSuffix)
	if len(s.WeekdayNames) == 7 {
		copy(cat.WeekdayNames[:], s.WeekdayNames)
	}

	setIf(&cat.WarningShortMonth, c.Warnings.ShortMonth)
	setIf(&cat.WarningNonLeapYear, c.Warnings.NonLeapYear)
	setIf(&cat.WarningLunarLeapMonth, c.Warnings.LunarLeapMonth)
	return &cat
}

// ToErrorCatalog merges locale error messages over the built-in ones.
func (c *CatalogConfig) ToErrorCatalog() domain.ErrorCatalog {
	merged := make(domain.ErrorCatalog, len(domain.DefaultErrorCatalog))
	for code, msg := range domain.DefaultErrorCatalog {
		merged[code] = msg
	}
	if c != nil {
		for code, msg := range c.Errors {
			merged[code] = msg
		}
	}
	return merged
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
