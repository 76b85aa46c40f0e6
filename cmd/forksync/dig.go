package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/forksync/internal"
	"github.com/rios0rios0/forksync/internal/infrastructure/controllers"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectSyncController() *controllers.SyncController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var syncController *controllers.SyncController
	if err := container.Invoke(func(sc *controllers.SyncController) {
		syncController = sc
	}); err != nil {
		panic(err)
	}

	return syncController
}
