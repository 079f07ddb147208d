package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/config"
	"github.com/VIJAYRUR/fitfoodie-backend/controllers"
	"github.com/VIJAYRUR/fitfoodie-backend/logger"
	"github.com/VIJAYRUR/fitfoodie-backend/routes"
	"github.com/VIJAYRUR/fitfoodie-backend/services"
	"github.com/VIJAYRUR/fitfoodie-backend/store/mongostore"
	"github.com/VIJAYRUR/fitfoodie-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	st, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer st.Close(context.Background())
	log.Info("connected to mongodb", zap.String("db", cfg.MongoDBName))

	// AWS-backed services are optional. A missing region or ARN disables
	// the feature; the content API keeps working without it.
	var mailer *utils.Mailer
	if cfg.SESEmail != "" {
		if mailer, err = utils.NewMailer(ctx, cfg.AWSRegion, cfg.SESEmail); err != nil {
			log.Warn("welcome emails disabled", zap.Error(err))
			mailer = nil
		}
	}
	var uploader *utils.S3Uploader
	if cfg.S3Bucket != "" {
		if uploader, err = utils.NewS3Uploader(ctx, cfg.S3Region, cfg.S3Bucket, cfg.CloudFrontURL); err != nil {
			log.Warn("image uploads disabled", zap.Error(err))
			uploader = nil
		}
	}
	var tagger *utils.TagSuggester
	if uploader != nil {
		if tagger, err = utils.NewTagSuggester(ctx, cfg.S3Region); err != nil {
			log.Warn("tag suggestions disabled", zap.Error(err))
			tagger = nil
		}
	}
	var push *services.PushService
	if cfg.SNSFCMArn != "" {
		if push, err = services.NewPushService(ctx, st.Devices(), cfg.AWSRegion, cfg.SNSFCMArn); err != nil {
			log.Warn("push notifications disabled", zap.Error(err))
			push = nil
		}
	}

	hub := services.NewFeedHub()
	notifier := services.NewFanoutNotifier(st.Users(), hub, push)

	userDirectory := services.NewUserDirectory(st)
	influencerRegistry := services.NewInfluencerRegistry(st)
	mealCatalog := services.NewMealCatalog(st, notifier)

	router := routes.SetupRouter(routes.Controllers{
		Auth:        controllers.NewAuthController(userDirectory, mailer, cfg.JWTSecret),
		Users:       controllers.NewUserController(userDirectory),
		Influencers: controllers.NewInfluencerController(influencerRegistry, userDirectory),
		Meals:       controllers.NewMealController(mealCatalog, influencerRegistry, userDirectory, uploader, tagger),
		Devices:     controllers.NewDeviceController(push),
		Realtime:    controllers.NewRealtimeController(hub),
	}, cfg.JWTSecret, log)

	log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
