package config

// EnvPrefix is the envconfig prefix applied to every variable.
const EnvPrefix = "GYMDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "GYMDESK_DB_DSN"
	EnvDBHost = "GYMDESK_DB_HOST"
	EnvDBUser = "GYMDESK_DB_USER"
	EnvDBName = "GYMDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
