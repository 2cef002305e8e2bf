package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
	"time"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	ImgPath  string `yaml:"img_path" env-default:"img"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TG_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"ChineseBeeBot"`
		Enabled bool   `yaml:"enabled" env-default:"true"`
	} `yaml:"telegram"`
	Backend struct {
		BaseURL string        `yaml:"base_url" env:"BACKEND_URL" env-default:"https://chinesebeeapi-production.up.railway.app"`
		Timeout time.Duration `yaml:"timeout" env-default:"10s"`
	} `yaml:"backend"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env-default:""`
		Database string `yaml:"database" env-default:"chinesebee"`
	} `yaml:"mongo"`
	Listen struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		BindIP  string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string `yaml:"port" env-default:"9100"`
		ApiKey  string `yaml:"key" env-default:""`
	} `yaml:"listen"`
	Tutorial struct {
		ContentPath string `yaml:"content_path" env-default:""`
	} `yaml:"tutorial"`
	Dictation struct {
		URL     string        `yaml:"url" env-default:"https://chinese-bee-dictation-production.up.railway.app/"`
		Secret  string        `yaml:"secret" env:"DICTATION_SECRET" env-default:""`
		LinkTTL time.Duration `yaml:"link_ttl" env-default:"24h"`
	} `yaml:"dictation"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
