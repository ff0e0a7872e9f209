package main

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/gommon/log"
	"github.com/xompass/gradebook-api/accounts"
	"github.com/xompass/gradebook-api/api"
	"github.com/xompass/gradebook-api/database"
	"github.com/xompass/gradebook-api/grades"
	"github.com/xompass/gradebook-api/helpers"
	"github.com/xompass/gradebook-api/models"
	"github.com/xompass/gradebook-api/rest"
	"github.com/xompass/gradebook-api/seed"
	"github.com/xompass/gradebook-api/token"
)

func main() {
	port := uint16(helpers.GetEnvInt("PORT", 8080))
	secret := helpers.GetEnvOrPanic("JWT_SECRET")
	tokenTTL := helpers.GetEnvDurationMs("JWT_EXPIRATION_MS", time.Hour)

	codec, err := token.NewCodec([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to create token codec: %v", err)
	}

	connector, err := database.NewDefaultMongoConnector()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ds := &database.Datasource{}
	if err := ds.AddConnector(connector); err != nil {
		log.Fatalf("Failed to register connector: %v", err)
	}

	userRepo, err := database.NewMongoRepository[models.User](ds)
	if err != nil {
		log.Fatalf("Failed to create user repository: %v", err)
	}

	gradeRepo, err := database.NewMongoRepository[models.Grade](ds)
	if err != nil {
		log.Fatalf("Failed to create grade repository: %v", err)
	}

	if err := ds.EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	userStore := accounts.NewMongoUserStore(userRepo)
	gradeStore := grades.NewMongoGradeStore(gradeRepo)

	accountService := accounts.NewService(userStore, codec, tokenTTL)
	gradeService := grades.NewService(gradeStore, userStore)

	app := rest.NewRestApp(rest.RestAppOptions{
		Name:              "gradebook-api",
		Port:              port,
		Datasource:        ds,
		LogLevel:          rest.LogLevelInfo,
		EnableRateLimiter: true,
		Authorizer:        api.NewAuthorizer(codec),
		AuditLogConfig: &rest.AuditLogConfig{
			Enabled: true,
			Handler: auditLogger,
		},
	})
	defer app.Destroy()

	api.RegisterRoutes(app, api.NewAuthHandlers(accountService), api.NewGradeHandlers(gradeService))

	if err := seed.Load(context.Background(), userStore, gradeStore); err != nil {
		log.Fatalf("Failed to seed initial data: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// auditLogger records every mutating request that reaches a handler. The
// response body is serialized as a single JSON line; credentials never pass
// through here because the auth endpoints disable auditing.
func auditLogger(ctx *rest.EndpointContext, response any, affectedModelId any) error {
	entry := map[string]any{
		"endpoint": ctx.Endpoint.Name,
		"action":   ctx.Endpoint.ActionType,
		"model":    ctx.Endpoint.Model,
		"modelId":  affectedModelId,
		"ip":       ctx.IpAddress,
	}

	if ctx.Principal != nil {
		entry["user"] = ctx.Principal.GetPrincipalID()
	}

	line, err := sonic.MarshalString(entry)
	if err != nil {
		return err
	}

	ctx.App.Infof("audit %s", line)
	return nil
}
