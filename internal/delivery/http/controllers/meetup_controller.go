package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"meetupservice/internal/delivery/http/helpers"
	"meetupservice/internal/domain"
)

// CreateMeetupRequest is the request body for POST /meetups. Collections and createdAt are
// server-managed and cannot be supplied.
type CreateMeetupRequest struct {
	MeetingID   string     `json:"meetingId"`
	Title       string     `json:"title"`
	Image       string     `json:"image"`
	Address     string     `json:"address"`
	Description string     `json:"description"`
	EventDate   *time.Time `json:"eventDate"`
}

// Validate implements Validator.
func (c CreateMeetupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.MeetingID) == "" {
		errs = append(errs, "meetingId is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

// UpdateMeetupRequest is the request body for PATCH /meetups/{meetingID}. All fields optional;
// omitted fields are unchanged.
type UpdateMeetupRequest struct {
	Title       *string    `json:"title"`
	Image       *string    `json:"image"`
	Address     *string    `json:"address"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"eventDate"`
}

func (u UpdateMeetupRequest) patch() domain.MeetupPatch {
	return domain.MeetupPatch{
		Title:       u.Title,
		Image:       u.Image,
		Address:     u.Address,
		Description: u.Description,
		EventDate:   u.EventDate,
	}
}

// Validate implements Validator.
func (u UpdateMeetupRequest) Validate() []string {
	var errs []string
	if u.patch().IsEmpty() {
		errs = append(errs, "at least one field is required")
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	return errs
}

// AddRatingRequest is the request body for POST /meetups/{meetingID}/ratings.
type AddRatingRequest struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
}

// Validate implements Validator.
func (a AddRatingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if a.Rating < 1 || a.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	return errs
}

// AddReviewRequest is the request body for POST /meetups/{meetingID}/reviews.
type AddReviewRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Comment  string `json:"comment"`
}

// Validate implements Validator.
func (a AddReviewRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.UserName) == "" {
		errs = append(errs, "userName is required")
	}
	if strings.TrimSpace(a.Comment) == "" {
		errs = append(errs, "comment is required")
	}
	return errs
}

// AddRSVPRequest is the request body for POST /meetups/{meetingID}/rsvps.
type AddRSVPRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// Validate implements Validator.
func (a AddRSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(a.UserName) == "" {
		errs = append(errs, "userName is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// ListMeetupsResponse is the response envelope for GET /meetups.
type ListMeetupsResponse struct {
	Data  []*domain.Meetup  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MeetupResultResponse is the response envelope for operations returning a MeetupResult.
type MeetupResultResponse struct {
	Data  domain.MeetupResult `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// RSVPResultResponse is the response envelope for POST /meetups/{meetingID}/rsvps.
type RSVPResultResponse struct {
	Data  domain.RSVPResult `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type MeetupController struct {
	Logger  *slog.Logger
	Service domain.MeetupService
}

func NewMeetupController(logger *slog.Logger, svc domain.MeetupService) *MeetupController {
	return &MeetupController{
		Logger:  logger,
		Service: svc,
	}
}

// ListMeetups godoc
// @Summary List meetups
// @Description Returns every meetup with its ratings, reviews and RSVPs. On store failure data is an empty array.
// @Tags meetups
// @Produce json
// @Success 200 {object} controllers.ListMeetupsResponse
// @Failure 500 {object} controllers.ListMeetupsResponse "error.code: internal_error"
// @Router /meetups [get]
func (c *MeetupController) ListMeetups(w http.ResponseWriter, r *http.Request) {
	meetups, err := c.Service.ListAll(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusInternalServerError, meetups, &helpers.APIError{
			Code:    helpers.ErrCodeInternalError,
			Message: "could not load meetups",
		})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// GetMeetup godoc
// @Summary Get a meetup
// @Tags meetups
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Success 200 {object} controllers.MeetupResultResponse
// @Failure 404 {object} controllers.MeetupResultResponse "error.code: not_found"
// @Failure 500 {object} controllers.MeetupResultResponse "error.code: internal_error"
// @Router /meetups/{meetingID} [get]
func (c *MeetupController) GetMeetup(w http.ResponseWriter, r *http.Request) {
	helpers.WriteResult(w, http.StatusOK, c.Service.Get(r.Context(), r.PathValue("meetingID")))
}

// CreateMeetup godoc
// @Summary Create a meetup
// @Description meetingId is chosen by the caller and must be unique. ratings, reviews and rsvps start empty; createdAt is set by the server.
// @Tags meetups
// @Accept json
// @Produce json
// @Param meetup body CreateMeetupRequest true "Meetup data"
// @Success 201 {object} controllers.MeetupResultResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} controllers.MeetupResultResponse "error.code: conflict"
// @Failure 500 {object} controllers.MeetupResultResponse "error.code: internal_error"
// @Router /meetups [post]
func (c *MeetupController) CreateMeetup(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res := c.Service.Create(r.Context(), &domain.Meetup{
		MeetingID:   req.MeetingID,
		Title:       req.Title,
		Image:       req.Image,
		Address:     req.Address,
		Description: req.Description,
		EventDate:   req.EventDate,
	})
	helpers.WriteResult(w, http.StatusCreated, res)
}

// UpdateMeetup godoc
// @Summary Update a meetup
// @Description Merges the given fields into the meetup. Ratings, reviews, RSVPs and createdAt cannot be changed here.
// @Tags meetups
// @Accept json
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Param patch body UpdateMeetupRequest true "Fields to change"
// @Success 200 {object} controllers.MeetupResultResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} controllers.MeetupResultResponse "error.code: not_found"
// @Failure 500 {object} controllers.MeetupResultResponse "error.code: internal_error"
// @Router /meetups/{meetingID} [patch]
func (c *MeetupController) UpdateMeetup(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	helpers.WriteResult(w, http.StatusOK, c.Service.Update(r.Context(), r.PathValue("meetingID"), req.patch()))
}

// DeleteMeetup godoc
// @Summary Delete a meetup
// @Tags meetups
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Success 200 {object} controllers.MeetupResultResponse
// @Failure 404 {object} controllers.MeetupResultResponse "error.code: not_found"
// @Failure 500 {object} controllers.MeetupResultResponse "error.code: internal_error"
// @Router /meetups/{meetingID} [delete]
func (c *MeetupController) DeleteMeetup(w http.ResponseWriter, r *http.Request) {
	helpers.WriteResult(w, http.StatusOK, c.Service.Delete(r.Context(), r.PathValue("meetingID")))
}

// AddRating godoc
// @Summary Rate a meetup
// @Description A second rating from the same userId replaces the first.
// @Tags meetups
// @Accept json
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Param rating body AddRatingRequest true "Rating 1..5"
// @Success 200 {object} controllers.MeetupResultResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} controllers.MeetupResultResponse "error.code: not_found"
// @Failure 500 {object} controllers.MeetupResultResponse "error.code: internal_error"
// @Router /meetups/{meetingID}/ratings [post]
func (c *MeetupController) AddRating(w http.ResponseWriter, r *http.Request) {
	var req AddRatingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res := c.Service.AddRating(r.Context(), r.PathValue("meetingID"), domain.Rating{UserID: req.UserID, Rating: req.Rating})
	helpers.WriteResult(w, http.StatusOK, res)
}

// AddReview godoc
// @Summary Review a meetup
// @Tags meetups
// @Accept json
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Param review body AddReviewRequest true "Review"
// @Success 201 {object} controllers.MeetupResultResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} controllers.MeetupResultResponse "error.code: not_found"
// @Failure 500 {object} controllers.MeetupResultResponse "error.code: internal_error"
// @Router /meetups/{meetingID}/reviews [post]
func (c *MeetupController) AddReview(w http.ResponseWriter, r *http.Request) {
	var req AddReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res := c.Service.AddReview(r.Context(), r.PathValue("meetingID"), domain.Review{
		UserID:   req.UserID,
		UserName: req.UserName,
		Comment:  req.Comment,
	})
	helpers.WriteResult(w, http.StatusCreated, res)
}

// AddRSVP godoc
// @Summary RSVP to a meetup
// @Description 201 when the RSVP is added, 200 when this userId already RSVP'd, 404 when the meetup does not exist.
// @Tags meetups
// @Accept json
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Param rsvp body AddRSVPRequest true "RSVP"
// @Success 201 {object} controllers.RSVPResultResponse "data.outcome: added"
// @Success 200 {object} controllers.RSVPResultResponse "data.outcome: duplicate"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} controllers.RSVPResultResponse "error.code: not_found"
// @Failure 500 {object} controllers.RSVPResultResponse "error.code: internal_error"
// @Router /meetups/{meetingID}/rsvps [post]
func (c *MeetupController) AddRSVP(w http.ResponseWriter, r *http.Request) {
	var req AddRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res := c.Service.AddRSVP(r.Context(), r.PathValue("meetingID"), domain.RSVP{
		UserID:   req.UserID,
		UserName: req.UserName,
		Email:    req.Email,
	})
	switch res.Outcome {
	case domain.RSVPAdded:
		helpers.WriteJSONSuccess(w, http.StatusCreated, res)
	case domain.RSVPDuplicate:
		helpers.WriteJSONSuccess(w, http.StatusOK, res)
	default:
		status, code := helpers.StatusForReason(res.Reason)
		helpers.WriteJSON(w, status, res, &helpers.APIError{Code: code, Message: res.Message})
	}
}

// RemoveRSVP godoc
// @Summary Cancel an RSVP
// @Description Succeeds even when the user had no RSVP.
// @Tags meetups
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.MeetupResultResponse
// @Failure 404 {object} controllers.MeetupResultResponse "error.code: not_found"
// @Failure 500 {object} controllers.MeetupResultResponse "error.code: internal_error"
// @Router /meetups/{meetingID}/rsvps/{userID} [delete]
func (c *MeetupController) RemoveRSVP(w http.ResponseWriter, r *http.Request) {
	helpers.WriteResult(w, http.StatusOK, c.Service.RemoveRSVP(r.Context(), r.PathValue("meetingID"), r.PathValue("userID")))
}
