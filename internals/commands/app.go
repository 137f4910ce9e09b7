// file: internals/commands/app.go
//
// Wiring: storage → token reader → gateway → repository/service.
package commands

import (
	"fmt"

	"go.uber.org/zap"

	"studentpoints_client/internals/configs"
	database "studentpoints_client/internals/databases"
	authRepo "studentpoints_client/internals/features/auth/repository"
	authService "studentpoints_client/internals/features/auth/service"
	evidenceRepo "studentpoints_client/internals/features/evidences/repository"
	profileRepo "studentpoints_client/internals/features/profiles/repository"
	sessionService "studentpoints_client/internals/features/session/service"
	"studentpoints_client/internals/gateway"
)

type App struct {
	Config  configs.Config
	Log     *zap.Logger
	Storage database.Storage

	Session   *sessionService.Store
	Passwords *authService.PasswordService
	Evidences *evidenceRepo.EvidenceRepository
	Profiles  *profileRepo.ProfileRepository
}

func NewApp(cfg configs.Config, log *zap.Logger) (*App, error) {
	storage, err := database.Open(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	gw := gateway.New(cfg.API.BaseURL, sessionService.NewTokens(storage), gateway.WithLogger(log))
	auth := authRepo.NewAuthRepository(gw)

	log.Debug("app wired",
		zap.String("api", cfg.API.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("path", cfg.Storage.Path),
	)

	return &App{
		Config:    cfg,
		Log:       log,
		Storage:   storage,
		Session:   sessionService.NewStore(storage, auth, log),
		Passwords: authService.NewPasswordService(auth, log),
		Evidences: evidenceRepo.NewEvidenceRepository(gw, log),
		Profiles:  profileRepo.NewProfileRepository(gw, log),
	}, nil
}

func (a *App) Close() error {
	return a.Storage.Close()
}
