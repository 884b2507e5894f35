//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"reviewreminder/internal"
	"reviewreminder/internal/controllers"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services"
	"reviewreminder/internal/services/interfaces"
	"reviewreminder/internal/storage"
	"reviewreminder/internal/structures"
)

var storeSet = wire.NewSet(
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,
	storage.NewZstdCompressor,
	storage.NewStoreProvider,
	services.NewSystemClock,
	services.NewUsageTracker,
)

var hostSet = wire.NewSet(
	providers.NewMetadataProvider,
	providers.NewHeadlessPresenter,
	providers.NewStoreLinkProvider,
	providers.NewReachabilityProvider,
	wire.Bind(new(interfaces.AppMetadataProvider), new(*providers.MetadataProvider)),
	wire.Bind(new(interfaces.PresentationHost), new(*providers.HeadlessPresenter)),
	wire.Bind(new(interfaces.StoreLinkOpener), new(*providers.StoreLinkProvider)),
	wire.Bind(new(interfaces.ReachabilityProvider), new(*providers.ReachabilityProvider)),
	wire.Bind(new(controllers.PromptSource), new(*providers.HeadlessPresenter)),
	wire.Bind(new(controllers.LinkSource), new(*providers.StoreLinkProvider)),
	wire.Bind(new(controllers.NetworkFeed), new(*providers.ReachabilityProvider)),
	wire.Bind(new(storage.Prober), new(*providers.ReachabilityProvider)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		storeSet,
		hostSet,

		services.NewEligibilityEvaluator,
		services.NewReachabilityMonitor,
		services.NewExecutors,
		services.NewPromptController,
		storage.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitMaintenance(cfg *structures.CliFlags) (*internal.Maintenance, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewCliLogProvider,
		storeSet,
		providers.NewMetadataProvider,
		wire.Bind(new(interfaces.AppMetadataProvider), new(*providers.MetadataProvider)),
		internal.NewMaintenance,
	)

	return nil, nil, nil
}
