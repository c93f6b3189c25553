package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/mba/internal/container"
	"github.com/joshua-takyi/mba/internal/handlers"
	"github.com/joshua-takyi/mba/internal/helpers"
	"github.com/joshua-takyi/mba/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-access-token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(container.Config.RateLimit, container.Redis, container.UserService, container.Logger))

	users := container.UserService
	theatres := container.TheatreService
	shows := container.ShowService
	bookings := container.BookingService
	auth := middleware.Authenticate(users)
	staff := middleware.IsAdminOrClient()

	v1 := r.Group("/mba/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		helpers.RespondSuccess(c, http.StatusOK, gin.H{"status": "OK", "service": "mba-api"}, "Service is healthy")
	})

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/signup", middleware.ValidateSignupRequest(), handlers.Signup(users))
		authRoutes.POST("/signin", middleware.ValidateSigninRequest(), handlers.Signin(users))
		authRoutes.PATCH("/reset", auth, middleware.ValidateResetPasswordRequest(), handlers.ResetPassword(users))
	}

	bookingRoutes := v1.Group("/bookings")
	{
		bookingRoutes.POST("", auth, middleware.ValidateBookingCreateRequest(theatres), handlers.CreateBooking(bookings))
		bookingRoutes.PATCH("/:id", auth, middleware.CanChangeStatus(), handlers.UpdateBooking(bookings))
		bookingRoutes.GET("", auth, handlers.ListBookings(bookings))
		bookingRoutes.GET("/all", auth, middleware.IsAdmin(), handlers.ListAllBookings(bookings))
		bookingRoutes.GET("/:id", auth, handlers.GetBooking(bookings))
	}

	showRoutes := v1.Group("/shows")
	{
		showRoutes.POST("", auth, staff, middleware.ValidateCreateShowRequest(), handlers.CreateShow(shows))
		showRoutes.GET("", handlers.ListShows(shows))
		showRoutes.DELETE("/:id", auth, staff, handlers.DeleteShow(shows))
		showRoutes.PATCH("/:id", auth, staff, middleware.ValidateShowUpdateRequest(), handlers.UpdateShow(shows))
	}

	theatreRoutes := v1.Group("/theatres")
	{
		theatreRoutes.POST("", auth, staff, middleware.ValidateTheatreCreateRequest(), handlers.CreateTheatre(theatres))
		theatreRoutes.DELETE("/:id", auth, staff, handlers.DeleteTheatre(theatres))
		theatreRoutes.GET("/:id", handlers.GetTheatre(theatres))
		theatreRoutes.GET("", handlers.ListTheatres(theatres))
		theatreRoutes.PATCH("/:id", auth, staff, handlers.UpdateTheatre(theatres))
		theatreRoutes.PUT("/:id", auth, staff, handlers.UpdateTheatre(theatres))
		theatreRoutes.PATCH("/:id/movies", auth, staff, middleware.ValidateUpdateMoviesRequest(), handlers.UpdateTheatreMovies(theatres))
		theatreRoutes.GET("/:id/movies", handlers.GetTheatreMovies(theatres))
		theatreRoutes.GET("/:id/movies/:movieId", handlers.CheckTheatreMovie(theatres))
	}

	v1.PATCH("/user/:id", auth, middleware.ValidateUpdateUserRequest(), middleware.IsAdmin(), handlers.UpdateUser(users))

	return r
}
