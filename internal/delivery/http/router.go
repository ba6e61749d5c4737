package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetupservice/internal/delivery/http/controllers"
	"meetupservice/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(meetupController *controllers.MeetupController, healthController *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// Meetups
	mux.HandleFunc("GET /meetups", meetupController.ListMeetups)
	mux.HandleFunc("POST /meetups", meetupController.CreateMeetup)
	mux.HandleFunc("GET /meetups/{meetingID}", meetupController.GetMeetup)
	mux.HandleFunc("PATCH /meetups/{meetingID}", meetupController.UpdateMeetup)
	mux.HandleFunc("DELETE /meetups/{meetingID}", meetupController.DeleteMeetup)

	// Per-user interactions
	mux.HandleFunc("POST /meetups/{meetingID}/ratings", meetupController.AddRating)
	mux.HandleFunc("POST /meetups/{meetingID}/reviews", meetupController.AddReview)
	mux.HandleFunc("POST /meetups/{meetingID}/rsvps", meetupController.AddRSVP)
	mux.HandleFunc("DELETE /meetups/{meetingID}/rsvps/{userID}", meetupController.RemoveRSVP)

	mux.HandleFunc("GET /healthz", healthController.Healthz)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the middleware chain: request ID, then logging, then CORS.
func NewHandler(logger *slog.Logger, allowedOrigins []string, mux http.Handler) http.Handler {
	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux)))
}
