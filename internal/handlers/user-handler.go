package handlers

import (
	"log"

	"claimbot/internal/middleware"
	"claimbot/internal/models"
	"claimbot/internal/rbac"
	"claimbot/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter for total login attempts
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimbot_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	// Counter for registrations
	registrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimbot_registration_attempts_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status"},
	)

	// Histogram for login duration
	loginDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "claimbot_login_duration_seconds",
			Help:    "Time spent processing login requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
)

type UserHandler struct {
	userService *service.UserService
	jwtService  *service.JWTService
}

func NewUserHandler(userService *service.UserService, jwtService *service.JWTService) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	app.Get("/health", h.HealthCheck)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGroup := app.Group("/public/auth")

	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)

	app.Get("/protected/profile/me", h.Me, auth)

	// User administration is admin territory outright; the role gate sits
	// in front of the finer per-route permission checks.
	adminGroup := app.Group("/protected/admin/users", auth, middleware.RoleRequired(rbac.RoleAdmin))

	adminGroup.Get("/", h.ListUsers, middleware.PermissionRequired(middleware.ReadAllUsersPermission))
	adminGroup.Get("/:id", h.GetUser, middleware.PermissionRequired(middleware.ReadAllUsersPermission))
	adminGroup.Put("/:id", h.UpdateUser, middleware.PermissionRequired(middleware.UpdateUsersPermission))
}

func (h *UserHandler) HealthCheck(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
	})
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var registerRequest models.RegisterRequest

	if err := c.Bind().Body(&registerRequest); err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if registerRequest.Email == "" || registerRequest.Password == "" {
		registrationAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	user, err := h.userService.Register(c.Context(), &registerRequest)
	if err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return failWith(c, err)
	}

	registrationAttempts.WithLabelValues("success").Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User Created Successfully",
		"data": fiber.Map{
			"user": user,
		},
	})
}

func (h *UserHandler) Login(c fiber.Ctx) error {
	timer := prometheus.NewTimer(loginDuration.WithLabelValues("regular"))
	defer timer.ObserveDuration()

	var loginRequest models.LoginRequest

	if err := c.Bind().Body(&loginRequest); err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if loginRequest.Email == "" || loginRequest.Password == "" {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	user, err := h.userService.Login(c.Context(), &loginRequest)
	if err != nil {
		log.Printf("Error login with email: %s : %s", loginRequest.Email, err)
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := h.jwtService.GenerateNewToken(user.Roles, user.Username, user.Email, user.ID.Hex())
	if err != nil {
		log.Printf("Error generating token for %s: %s", loginRequest.Email, err)
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}

	loginAttempts.WithLabelValues("success").Inc()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User Login Successfully",
		"data": fiber.Map{
			"token": token,
			"user":  user,
		},
	})
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	user, err := h.userService.GetUserCached(c.Context(), actor.ID)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
		},
	})
}

func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"users": users,
			"count": len(users),
		},
	})
}

func (h *UserHandler) GetUser(c fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
		},
	})
}

func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	var updateRequest models.UpdateUserRequest

	if err := c.Bind().Body(&updateRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.userService.UpdateUser(c.Context(), c.Params("id"), &updateRequest)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User Updated Successfully",
		"data": fiber.Map{
			"user": user,
		},
	})
}
