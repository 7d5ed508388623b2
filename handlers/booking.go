package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"roomly/middleware"
	"roomly/models"
	bookingSvc "roomly/services/booking"
	"roomly/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Bookings bookingSvc.BookingService
}

func NewBookingHandler(bookings bookingSvc.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type createBookingRequest struct {
	RoomID         string   `json:"room_id" binding:"required"`
	Date           string   `json:"date" binding:"required"`
	StartTime      string   `json:"start_time" binding:"required"`
	EndTime        string   `json:"end_time" binding:"required"`
	ParticipantIDs []string `json:"participant_ids"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}

	start, err := models.ParseClock(req.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start_time", err.Error())
		return
	}
	end, err := models.ParseClock(req.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid end_time", err.Error())
		return
	}

	bk, err := h.Bookings.CreateBooking(bookingSvc.CreateBookingInput{
		RoomID:         req.RoomID,
		OrganizerID:    c.GetString(middleware.ContextUserID),
		Date:           req.Date,
		Start:          start,
		End:            end,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bk)
}

func (h *BookingHandler) Get(c *gin.Context) {
	bk, err := h.Bookings.GetBooking(c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

type updateBookingRequest struct {
	Date           *string   `json:"date"`
	StartTime      *string   `json:"start_time"`
	EndTime        *string   `json:"end_time"`
	ParticipantIDs *[]string `json:"participant_ids"`
}

func (h *BookingHandler) Update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}

	input := bookingSvc.UpdateBookingInput{
		Date:           req.Date,
		ParticipantIDs: req.ParticipantIDs,
	}
	if req.StartTime != nil {
		start, err := models.ParseClock(*req.StartTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid start_time", err.Error())
			return
		}
		input.Start = &start
	}
	if req.EndTime != nil {
		end, err := models.ParseClock(*req.EndTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid end_time", err.Error())
			return
		}
		input.End = &end
	}

	bk, err := h.Bookings.UpdateBooking(c.Param("id"), c.GetString(middleware.ContextUserID), input)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.Bookings.CancelBooking(c.Param("id"), c.GetString(middleware.ContextUserID)); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.Bookings.DeleteBooking(c.Param("id"), c.GetString(middleware.ContextUserID)); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// MyBookings lists bookings the acting user organizes or attends within a
// date window (default: the next three weeks).
func (h *BookingHandler) MyBookings(c *gin.Context) {
	rng := rangeFromQuery(c)
	bookings, err := h.Bookings.UserBookings(c.GetString(middleware.ContextUserID), rng, c.Query("status"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) RoomBookings(c *gin.Context) {
	rng := rangeFromQuery(c)
	bookings, err := h.Bookings.RoomBookings(c.Param("id"), rng, c.Query("status"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CheckAvailability answers whether a room slot is free of active bookings.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	date := c.Query("date")
	start, err := models.ParseClock(c.Query("start_time"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start_time", err.Error())
		return
	}
	end, err := models.ParseClock(c.Query("end_time"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid end_time", err.Error())
		return
	}

	free, err := h.Bookings.CheckAvailability(c.Param("id"), date, start, end)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": free})
}

func (h *BookingHandler) Pending(c *gin.Context) {
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	bookings, total, err := h.Bookings.PendingBookings(skip, limit)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": total})
}

func (h *BookingHandler) PendingCount(c *gin.Context) {
	_, total, err := h.Bookings.PendingBookings(0, 1)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": total})
}

func (h *BookingHandler) Approve(c *gin.Context) {
	bk, err := h.Bookings.ApproveBooking(c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		writeApprovalError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Reject(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rejection payload", err.Error())
		return
	}

	bk, err := h.Bookings.RejectBooking(c.Param("id"), c.GetString(middleware.ContextUserID), req.Reason)
	if err != nil {
		writeApprovalError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

func rangeFromQuery(c *gin.Context) bookingSvc.DateRange {
	return bookingSvc.DateRange{
		Start: c.Query("start_date"),
		End:   c.Query("end_date"),
	}
}

// writeBookingError maps service errors for the self-serve booking surface.
// Unauthorized access is reported as not-found so booking IDs are not
// enumerable by other users.
func writeBookingError(c *gin.Context, err error) {
	var validationErr bookingSvc.ValidationError
	var conflictErr bookingSvc.ConflictError
	switch {
	case errors.Is(err, bookingSvc.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "Room not found", "")
	case errors.Is(err, bookingSvc.ErrBookingNotFound), errors.Is(err, bookingSvc.ErrNotAuthorized):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Reason, "")
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Room is already booked for this time slot", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Booking operation failed", "")
	}
}

// writeApprovalError maps service errors for the manager approval surface,
// where forbidden and not-found stay distinct.
func writeApprovalError(c *gin.Context, err error) {
	var validationErr bookingSvc.ValidationError
	switch {
	case errors.Is(err, bookingSvc.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	case errors.Is(err, bookingSvc.ErrNotPending):
		utils.JSONError(c, http.StatusConflict, "Booking is not pending approval", "")
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Reason, "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Approval operation failed", "")
	}
}
