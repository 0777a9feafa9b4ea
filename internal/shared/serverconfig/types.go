package serverconfig

type Config struct {
	MySQL       MySQLConfig       `yaml:"mysql" mapstructure:"mysql"`
	MongoDB     MongoDBConfig     `yaml:"mongodb" mapstructure:"mongodb"`
	LoginServer LoginServerConfig `yaml:"loginserver" mapstructure:"loginserver"`
	GateServer  GateServerConfig  `yaml:"gateserver" mapstructure:"gateserver"`
	GameServer  GameServerConfig  `yaml:"gameserver" mapstructure:"gameserver"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Logic       LogicConfig       `yaml:"logic" mapstructure:"logic"`
	JWTSecret   string            `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

// LoginServer 是账号 HTTP 服务：注册、登录、签发 token。
type LoginServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// GateServer 是客户端唯一入口：WS 接入，按 proxy 把请求转给后端服务。
type GateServerConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	NeedSecret bool   `yaml:"need_secret" mapstructure:"need_secret"`
	LoginProxy string `yaml:"login_proxy" mapstructure:"login_proxy"`
	GameProxy  string `yaml:"game_proxy" mapstructure:"game_proxy"`
}

// GameServer 承载对局进程：帝国 actor、回合调度、商店与机器人。
type GameServerConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	NeedSecret bool   `yaml:"need_secret" mapstructure:"need_secret"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type LogicConfig struct {
	ServerID int   `yaml:"server_id" mapstructure:"server_id"` // snowflake 节点号
	BotCount int   `yaml:"bot_count" mapstructure:"bot_count"` // 对局机器人数量
	RandSeed int64 `yaml:"rand_seed" mapstructure:"rand_seed"` // 0 表示用时间种子
}
