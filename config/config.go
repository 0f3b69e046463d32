package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Backend struct {
		Host string `default:"http://127.0.0.1:54321" env:"BACKEND_HOST"`
		// анонимный ключ Supabase, передается в заголовках apikey/Authorization
		AnonKey string `default:"" env:"BACKEND_ANON_KEY"`
		// таймаут запроса к бекенду в секундах, 0 - без таймаута
		RequestTimeoutInSec int `default:"0" env:"BACKEND_REQUEST_TIMEOUT_SEC"`
	}
	Auth struct {
		JWTSecret      string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"43200" env:"AUTH_JWT_EXPIRE_SEC"`
	}
	Claim struct {
		// время показа сообщения об успешной отправке заявки, в секундах
		SubmitMessageTTLInSec int `default:"3" env:"CLAIM_SUBMIT_MESSAGE_TTL_SEC"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
