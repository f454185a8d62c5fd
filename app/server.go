package app

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/ordane/paygate/app/controllers"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func Run() {
	var server = controllers.Server{}
	var appConfig = controllers.AppConfig{}
	var dbConfig = controllers.DBConfig{}
	var gwConfig = controllers.GatewayConfig{}

	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig.AppName = getEnv("APP_NAME", "PayGate")
	appConfig.AppEnv = getEnv("APP_ENV", "development")
	appConfig.AppPort = getEnv("APP_PORT", "9000")
	appConfig.APIKey = getEnv("API_KEY", "")

	dbConfig.DBHost = getEnv("DB_HOST", "localhost")
	dbConfig.DBUser = getEnv("DB_USER", "root")
	dbConfig.DBPassword = getEnv("DB_PASSWORD", "123")
	dbConfig.DBName = getEnv("DB_NAME", "paygatedb")
	dbConfig.DBPort = getEnv("DB_PORT", "3306")
	dbConfig.DBDriver = getEnv("DB_DRIVER", "mysql")

	gwConfig.APIURL = getEnv("GATEWAY_API_URL", "https://my.sepay.vn/userapi")
	gwConfig.APIKey = getEnv("GATEWAY_API_KEY", "")

	flag.Parse()
	arg := flag.Arg(0)

	if arg != "" {
		server.InitCommands(appConfig, dbConfig)
	} else {
		server.Initialize(appConfig, dbConfig, gwConfig)
		server.Run(":" + appConfig.AppPort)
	}
}
