package app

import (
	"fmt"

	"github.com/sahilchouksey/research-portal-api/api"
	"github.com/sahilchouksey/research-portal-api/config"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/router"
	"github.com/sahilchouksey/research-portal-api/utils/upload"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// The ORM connection owns the users and research_projects tables;
	// its migrations run before the raw-SQL table initializer so the
	// FK targets exist.
	gormStore, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}
	defer gormStore.Close()

	if err := gormStore.Init(); err != nil {
		print("Failed to run ORM migrations\n")
		return err
	}

	store, err := database.Start()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	saver, err := upload.NewSaver(getEnv.UPLOAD_DIR)
	if err != nil {
		return err
	}

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	router.SetupRoutes(app, store, gormStore, saver, getEnv)

	return server.Run()
}
