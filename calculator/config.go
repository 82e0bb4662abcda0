package calculator

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultConfigPath = "conf/config.ini"

type Config struct {
	// 计算参数
	Threshold     float64
	MaxIterations int
	Workers       int

	// websocket 服务
	Addr         string
	History      int
	HistoryDeque string // array 或 list

	// 控制台输出
	FrameInterval time.Duration
	Precision     int
	CellWidth     int
	Clear         bool

	LogLevel string
}

func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

// LoadConfig 读取 ini 配置文件，文件不存在时使用默认值
func LoadConfig(path string) (Config, error) {
	file, err := ini.LooseLoad(path)
	if err != nil {
		return Config{}, err
	}
	if len(file.Sections()) <= 1 && len(file.Section("").Keys()) == 0 {
		log.WithField("path", path).Warn("配置文件为空或不存在，使用默认配置")
	}
	return loadCfg(file), nil
}

func loadCfg(file *ini.File) Config {
	return Config{
		Threshold:     file.Section("calculator").Key("Threshold").MustFloat64(Threshold),
		MaxIterations: file.Section("calculator").Key("MaxIterations").MustInt(MaxIterations),
		Workers:       file.Section("calculator").Key("Workers").MustInt(1),

		Addr:         file.Section("server").Key("Addr").MustString(":9000"),
		History:      file.Section("server").Key("History").MustInt(64),
		HistoryDeque: file.Section("server").Key("HistoryDeque").In("array", []string{"array", "list"}),

		FrameInterval: time.Duration(file.Section("console").Key("FrameInterval").MustInt(200)) * time.Millisecond,
		Precision:     file.Section("console").Key("Precision").MustInt(2),
		CellWidth:     file.Section("console").Key("CellWidth").MustInt(8),
		Clear:         file.Section("console").Key("Clear").MustBool(true),

		LogLevel: file.Section("log").Key("Level").MustString("info"),
	}
}

// SetupLogger 根据配置设置日志级别
func (c Config) SetupLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("未知的日志级别，使用 info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
