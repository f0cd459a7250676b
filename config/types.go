package config

type Config struct {
	Server Server
	Mysql  Mysql
	Redis  Redis
	Minio  Minio
	Jwt    Jwt
}

type Server struct {
	Addr           string
	MaxRequestBody int
	AllowOrigins   []string
}

type Mysql struct {
	Addr         string
	Database     string
	Username     string
	Password     string
	Charset      string
	MaxOpenConns int
	MaxIdleConns int
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Minio struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	PublicBaseURL   string
}

type Jwt struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpire  int64 // minutes
	RefreshExpire int64 // hours
	Issuer        string
}
