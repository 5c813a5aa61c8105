package room

import (
	"context"
	"log/slog"
	"sync"

	authhandlers "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/handlers"
	roomservice "github.com/Black-And-White-Club/prode/app/modules/room/application"
	roomhandlers "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/handlers"
	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the room module.
type Module struct {
	repo     roomdb.Repository
	service  roomservice.Service
	handlers roomhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the room module and registers the room and membership
// routes. Every route needs an identity, guest or account.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
	httpRouter chi.Router,
	guards *authhandlers.Guards,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing room module")

	repo := roomdb.NewRepository(db)
	service := roomservice.NewRoomService(repo, publisher, logger, obs.Registry.Metrics, obs.Registry.Tracer, db)
	handlers := roomhandlers.NewRoomHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Group(func(r chi.Router) {
			r.Use(guards.RequireIdentity)
			r.Post("/api/rooms", handlers.HandleCreateRoom)
			r.With(guards.RateLimit).Post("/api/rooms/join", handlers.HandleJoinRoom)
			r.Get("/api/rooms/mine", handlers.HandleListMyRooms)
			r.Get("/api/rooms/{roomID}", handlers.HandleGetRoom)
			r.Delete("/api/rooms/{roomID}", handlers.HandleDeleteRoom)
			r.Get("/api/rooms/{roomID}/my-status", handlers.HandleMyStatus)
			r.Get("/api/rooms/{roomID}/pending", handlers.HandleListPending)
			r.Patch("/api/rooms/{roomID}/members/{memberID}/approve", handlers.HandleApproveMember)
			r.Delete("/api/rooms/{roomID}/members/{memberID}/reject", handlers.HandleRejectMember)
			r.Delete("/api/rooms/{roomID}/members/{memberID}/kick", handlers.HandleKickMember)
			r.Patch("/api/rooms/{roomID}/members/{memberID}/role", handlers.HandleChangeRole)
		})
	}

	return &Module{
		repo:     repo,
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Repository exposes room persistence to the standings and prediction modules.
func (m *Module) Repository() roomdb.Repository {
	return m.repo
}

// Service returns the room service.
func (m *Module) Service() roomservice.Service {
	return m.service
}

// Run has no background work.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	m.logger.InfoContext(ctx, "Room module ready")
}

// Close stops the room module.
func (m *Module) Close() error {
	m.logger.Info("Stopping room module")
	return nil
}
