package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karma/internal/db"
	"karma/internal/events"
	"karma/internal/identity"
	"karma/internal/impact"
	"karma/internal/server"
	"karma/internal/storage"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP API",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)
	s3Client := s3.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	nc, err := events.Connect(config, logger)
	if err != nil {
		return err
	}
	if nc != nil {
		defer func() {
			if err := nc.Drain(); err != nil {
				logger.WithError(err).Warn("failed to drain nats connection")
			}
		}()
	} else {
		logger.Info("NATS_URL not set, events are discarded")
	}

	repos := newRepositories(pool)

	impactService := impact.New(
		logger,
		repos.stores(),
		impact.WithPublisher(events.New(nc)),
		impact.WithReceipts(storage.NewReceiptStore(s3Client, config.S3BucketName)),
		impact.WithIdentity(identity.NewCognitoSync(cognitoClient, config.CognitoUserPoolID)),
		impact.WithRecommendationLimit(config.RecommendationLimit),
	)

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.CognitoIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register cognito jwks with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		impactService,
		jwkCache,
		jwksURL,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
