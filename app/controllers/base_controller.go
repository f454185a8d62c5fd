package controllers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/ordane/paygate/app/gateway"
	"github.com/ordane/paygate/app/models"
	"github.com/ordane/paygate/app/reconcile"
	"github.com/ordane/paygate/database/seeders"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
	"github.com/urfave/cli"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	DB         *gorm.DB
	Router     *mux.Router
	AppConfig  *AppConfig
	Gateway    *gateway.Client
	Reconciler *reconcile.Service
	Log        *logrus.Logger

	render *render.Render
}

type AppConfig struct {
	AppName string
	AppEnv  string
	AppPort string
	APIKey  string
}

type DBConfig struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBDriver   string
}

type GatewayConfig struct {
	APIURL string
	APIKey string
}

type Result struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func (server *Server) Initialize(appConfig AppConfig, dbConfig DBConfig, gwConfig GatewayConfig) {
	server.Log = newLogger(appConfig.AppEnv)
	server.Log.Infof("Welcome to %s", appConfig.AppName)

	server.initializeDB(dbConfig)
	server.AppConfig = &appConfig
	server.render = render.New()

	server.Gateway = gateway.NewClient(gwConfig.APIURL, gwConfig.APIKey, server.Log)
	server.Reconciler = reconcile.NewService(server.Gateway, server.Log)

	server.initializeRoutes()
}

func (server *Server) Run(addr string) {
	server.Log.Infof("Listening to port %s", addr)
	server.Log.Fatal(http.ListenAndServe(addr, server.Router))
}

func newLogger(env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func (server *Server) initializeDB(dbConfig DBConfig) {
	var err error
	if dbConfig.DBDriver == "mysql" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", dbConfig.DBUser, dbConfig.DBPassword, dbConfig.DBHost, dbConfig.DBPort, dbConfig.DBName)
		server.DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", dbConfig.DBHost, dbConfig.DBUser, dbConfig.DBPassword, dbConfig.DBName, dbConfig.DBPort)
		server.DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		panic("Failed on connecting to the database server")
	}
}

func (server *Server) dbMigrate() {
	for _, model := range models.RegisterModels() {
		err := server.DB.AutoMigrate(model.Model)

		if err != nil {
			server.Log.Fatal(err)
		}
	}

	server.Log.Info("Database migrated successfully.")
}

func (server *Server) InitCommands(appConfig AppConfig, dbConfig DBConfig) {
	server.Log = newLogger(appConfig.AppEnv)
	server.initializeDB(dbConfig)

	cmdApp := cli.NewApp()
	cmdApp.Commands = []cli.Command{
		{
			Name: "db:migrate",
			Action: func(c *cli.Context) error {
				server.dbMigrate()
				return nil
			},
		},
		{
			Name: "db:seed",
			Action: func(c *cli.Context) error {
				err := seeders.DBSeed(server.DB)
				if err != nil {
					server.Log.Fatal(err)
				}

				return nil
			},
		},
	}

	err := cmdApp.Run(os.Args)
	if err != nil {
		server.Log.Fatal(err)
	}
}

func (server *Server) respond(w http.ResponseWriter, code int, data interface{}, message string) {
	_ = server.render.JSON(w, code, Result{Code: code, Data: data, Message: message})
}

func (server *Server) respondError(w http.ResponseWriter, code int, message string) {
	server.respond(w, code, nil, message)
}
