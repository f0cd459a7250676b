package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Load reads config.yml from the usual locations and resolves it into a
// Config. Viper keeps the file hot-reloadable and case-insensitive; the
// resolved struct is handed to main and injected from there, nothing reads
// viper after startup.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")

	for _, path := range []string{"./config", "../config", "../../config", "."} {
		v.AddConfigPath(path)
	}

	v.SetDefault("server.addr", "0.0.0.0:8888")
	v.SetDefault("server.max_request_body", 512*1024*1024)
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_open_conns", 100)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.access_expire", 15)
	v.SetDefault("jwt.refresh_expire", 24*7)
	v.SetDefault("jwt.issuer", "videotube")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	logrus.Infof("config loaded from %s", v.ConfigFileUsed())

	conf := &Config{
		Server: Server{
			Addr:           v.GetString("server.addr"),
			MaxRequestBody: v.GetInt("server.max_request_body"),
			AllowOrigins:   v.GetStringSlice("server.allow_origins"),
		},
		Mysql: Mysql{
			Addr:         v.GetString("mysql.addr"),
			Database:     v.GetString("mysql.database"),
			Username:     v.GetString("mysql.username"),
			Password:     v.GetString("mysql.password"),
			Charset:      v.GetString("mysql.charset"),
			MaxOpenConns: v.GetInt("mysql.max_open_conns"),
			MaxIdleConns: v.GetInt("mysql.max_idle_conns"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Minio: Minio{
			Endpoint:        v.GetString("minio.endpoint"),
			AccessKeyID:     v.GetString("minio.access_key"),
			SecretAccessKey: v.GetString("minio.secret_key"),
			UseSSL:          v.GetBool("minio.use_ssl"),
			PublicBaseURL:   v.GetString("minio.public_base_url"),
		},
		Jwt: Jwt{
			AccessSecret:  v.GetString("jwt.access_secret"),
			RefreshSecret: v.GetString("jwt.refresh_secret"),
			AccessExpire:  v.GetInt64("jwt.access_expire"),
			RefreshExpire: v.GetInt64("jwt.refresh_expire"),
			Issuer:        v.GetString("jwt.issuer"),
		},
	}
	return conf, nil
}
