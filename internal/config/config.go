package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"production-line-planner/internal/engine"
	"production-line-planner/internal/machine"
	"production-line-planner/internal/types"
)

// Config 定义应用程序的配置结构
// 使用 mapstructure 标签来映射配置文件中的字段
type Config struct {
	TargetPrice int             `mapstructure:"target_price"` // 要匹配的目标总价
	Output      string          `mapstructure:"output"`       // 输出格式: text, json, yaml
	LogLevel    string          `mapstructure:"log_level"`    // 日志级别: debug, info, warn, error
	Search      SearchConfig    `mapstructure:"search"`       // 价格搜索参数
	Categories  machine.Catalog `mapstructure:"categories"`   // 机器常量表
}

// SearchConfig 定义价格搜索的参数
type SearchConfig struct {
	Strategy     string `mapstructure:"strategy"`      // bisect 或 exhaustive
	Tactic       string `mapstructure:"tactic"`        // 搜索时下游工段的策略
	InitialGuess string `mapstructure:"initial_guess"` // 初始产能猜测的表达式 (expr 语法)，变量 target 为目标价格
	MaxCapacity  int    `mapstructure:"max_capacity"`  // 搜索的产能上界
}

// EnvPrefix 是环境变量覆盖配置时使用的前缀，例如 PLANNER_TARGET_PRICE
const EnvPrefix = "PLANNER"

// RegisterFlags 在命令行 FlagSet 上注册可覆盖配置的参数
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "配置文件路径 (默认在当前目录查找 config.yaml)")
	fs.Int("target", 0, "目标总价")
	fs.String("output", "", "输出格式: text, json, yaml")
	fs.String("log-level", "", "日志级别: debug, info, warn, error")
	fs.String("strategy", "", "搜索方式: bisect, exhaustive")
}

// setDefaults 设置所有默认值，未提供配置文件时程序按这些值运行
func setDefaults(v *viper.Viper) {
	v.SetDefault("target_price", 51400)
	v.SetDefault("output", "text")
	v.SetDefault("log_level", "info")

	v.SetDefault("search.strategy", string(types.StrategyBisect))
	v.SetDefault("search.tactic", string(types.TacticExact))
	v.SetDefault("search.initial_guess", "target / 1725")
	v.SetDefault("search.max_capacity", 1<<20)

	catalog := machine.DefaultCatalog()
	for _, id := range types.Categories() {
		cat, _ := catalog.Get(id)
		prefix := "categories." + string(id) + "."
		v.SetDefault(prefix+"name", string(cat.Name))
		v.SetDefault(prefix+"cost_step", cat.CostStep)
		v.SetDefault(prefix+"cost_baseline", cat.CostBaseline)
		v.SetDefault(prefix+"capacity_max", cat.CapacityMax)
		v.SetDefault(prefix+"capacity_min", cat.CapacityMin)
	}
}

// LoadConfig 从默认值、config.yaml、环境变量和命令行参数加载配置
// 使用 Viper 库来读取和解析配置文件；fs 可以为 nil
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configFile := ""
	if fs != nil {
		configFile, _ = fs.GetString("config")
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config") // 配置文件名称 (不带扩展名)
		v.SetConfigType("yaml")   // 配置文件类型
		v.AddConfigPath(".")      // 查找配置文件的路径 (当前目录)
	}

	// 读取配置文件，未找到默认配置文件时只使用默认值
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 将配置解析到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return &cfg, nil
}

// bindFlags 只绑定命令行里显式设置过的参数，未设置的参数不覆盖配置文件
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	keys := map[string]string{
		"target":    "target_price",
		"output":    "output",
		"log-level": "log_level",
		"strategy":  "search.strategy",
	}
	for flagName, key := range keys {
		flag := fs.Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("绑定命令行参数 %s 失败: %w", flagName, err)
		}
	}
	return nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if c.TargetPrice < 0 {
		return fmt.Errorf("target_price must be >= 0, got %d", c.TargetPrice)
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if _, err := types.ParseStrategy(c.Search.Strategy); err != nil {
		return err
	}
	if _, err := types.ParseTactic(c.Search.Tactic); err != nil {
		return err
	}
	if c.Search.InitialGuess == "" {
		return errors.New("search.initial_guess must not be empty")
	}
	if c.Search.MaxCapacity < 1 || c.Search.MaxCapacity > engine.MaxCapacityLimit {
		return fmt.Errorf("search.max_capacity must be in [1, %d], got %d", engine.MaxCapacityLimit, c.Search.MaxCapacity)
	}
	return c.Categories.Validate()
}
