package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/campuschain/ccms"
	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/present/rest/middleware"
	"github.com/campuschain/ccms/internal/present/rest/presenter"
	"github.com/campuschain/ccms/internal/service"
	"github.com/campuschain/ccms/internal/usecase"
)

// LedgerHealth is the slice of the ledger gateway the health endpoint needs.
type LedgerHealth interface {
	Health(ctx context.Context) error
}

type Handler struct {
	db           *gorm.DB
	ledger       LedgerHealth
	users        *usecase.UserUsecase
	events       *usecase.EventUsecase
	attendance   *usecase.AttendanceUsecase
	certificates *usecase.CertificateUsecase
	feedback     *usecase.FeedbackUsecase
	voting       *usecase.VotingUsecase
	reputation   *usecase.ReputationUsecase
	auth         *service.AuthService
	signal       *service.SignalService
	mc           *memcache.Client
	explorer     ccms.Explorer
	production   bool
}

func NewHandler(
	db *gorm.DB,
	ledger LedgerHealth,
	users *usecase.UserUsecase,
	events *usecase.EventUsecase,
	attendance *usecase.AttendanceUsecase,
	certificates *usecase.CertificateUsecase,
	feedback *usecase.FeedbackUsecase,
	voting *usecase.VotingUsecase,
	reputation *usecase.ReputationUsecase,
	auth *service.AuthService,
	signal *service.SignalService,
	mc *memcache.Client,
	explorer ccms.Explorer,
	production bool,
) *Handler {
	return &Handler{
		db:           db,
		ledger:       ledger,
		users:        users,
		events:       events,
		attendance:   attendance,
		certificates: certificates,
		feedback:     feedback,
		voting:       voting,
		reputation:   reputation,
		auth:         auth,
		signal:       signal,
		mc:           mc,
		explorer:     explorer,
		production:   production,
	}
}

// Validator adapts go-playground/validator to echo's Validate hook.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	e.Validator = NewValidator()
	e.Use(authMiddleware.IdentifyRequester)

	adminRoles := []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleFaculty}
	voterRoles := []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleFaculty, domain.RoleStudent}

	e.GET("/health", h.handleHealth)
	e.GET("/realtime", h.handleRealtime)

	e.POST("/api/auth/register", h.handleRegister)
	e.POST("/api/auth/login", h.handleLogin)
	e.POST("/api/auth/refresh", h.handleRefresh)

	e.GET("/api/events", h.handleListEvents, middleware.RequireRole(voterRoles...))
	e.GET("/api/events/:eventId", h.handleGetEvent, middleware.RequireRole(voterRoles...))
	e.POST("/api/events", h.handleCreateEvent, middleware.RequireRole(adminRoles...))
	e.POST("/api/events/demo", h.handleCreateEventDemo)

	e.POST("/api/attendance/mark", h.handleMarkAttendance)
	e.POST("/api/attendance/mark/auth", h.handleMarkAttendanceAuth, middleware.RequireRole(voterRoles...))
	e.GET("/api/attendance/my", h.handleMyAttendance, middleware.RequireRole(voterRoles...))
	e.GET("/api/attendance/event/:eventId", h.handleEventAttendance, middleware.RequireRole(adminRoles...))
	e.GET("/api/attendance/verify/:id", h.handleVerifyAttendance)

	e.POST("/api/certificates/issue", h.handleIssueCertificate)
	e.POST("/api/certificates/issue/auth", h.handleIssueCertificateAuth, middleware.RequireRole(voterRoles...))
	e.GET("/api/certificates/eligibility/:eventId", h.handleCertificateEligibility)
	e.GET("/api/certificates/my", h.handleMyCertificates, middleware.RequireRole(voterRoles...))
	e.GET("/api/certificates/verify/:hash", h.handleVerifyCertificate)

	e.POST("/api/feedback/submit", h.handleSubmitFeedback)
	e.GET("/api/feedback/analytics/:eventId", h.handleFeedbackAnalytics, middleware.RequireRole(adminRoles...))
	// Raw feedback texts are more sensitive than the aggregate; faculty get
	// analytics only.
	e.GET("/api/feedback/all/:eventId", h.handleAllFeedback,
		middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin))

	e.POST("/api/voting/create", h.handleCreateElection,
		middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin))
	e.POST("/api/voting/vote", h.handleCastVote, middleware.RequireRole(voterRoles...))
	e.GET("/api/voting/elections", h.handleListElections)
	e.GET("/api/voting/elections/:electionId", h.handleGetElection)

	e.GET("/api/reputation/:wallet", h.handleReputationScores)
	e.GET("/api/reputation/dashboard/:wallet", h.handleReputationDashboard)
}

// fail maps workflow errors onto the response taxonomy. Conflicts and
// validation failures both serve 400; the message tells them apart.
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return presenter.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return presenter.BadRequest(c, err)
	default:
		return presenter.InternalError(c, err, h.production)
	}
}

func (h *Handler) handleHealth(c echo.Context) error {
	ctx := c.Request().Context()

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		dbStatus = "unreachable"
	}

	ledgerStatus := "ok"
	if err := h.ledger.Health(ctx); err != nil {
		ledgerStatus = "unreachable"
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, echo.Map{
		"database":   dbStatus,
		"blockchain": ledgerStatus,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type     string   `json:"type"`
	EventIDs []string `json:"eventIds"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	// Cancellation is the only teardown signal. Neither channel is ever
	// closed while the pump or the reader may still be sending on it.
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan service.Signal)

	go h.signal.Realtime(ctx, input, output)

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				cancel()
				return
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.EventIDs:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.EventIDs),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case signal := <-output:
			err := ws.WriteJSON(signal)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
