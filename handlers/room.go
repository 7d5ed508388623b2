package handlers

import (
	"net/http"
	"time"

	roomRepo "roomly/database/repository/room"
	"roomly/models"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	Rooms roomRepo.RoomRepository
}

func NewRoomHandler(rooms roomRepo.RoomRepository) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

// ListRooms returns the room catalog. `?available=true` restricts the
// listing to rooms currently open for booking.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var (
		rooms interface{}
		err   error
	)
	if c.Query("available") == "true" {
		rooms, err = h.Rooms.GetAvailable()
	} else {
		rooms, err = h.Rooms.GetAll()
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list rooms", "")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.Rooms.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load room", "")
		return
	}
	if room == nil {
		utils.JSONError(c, http.StatusNotFound, "Room not found", "")
		return
	}
	c.JSON(http.StatusOK, room)
}

type roomRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity" binding:"required,gt=0"`
	Amenities   []string `json:"amenities"`
	Available   *bool    `json:"available"`
}

// CreateRoom adds a room to the catalog. Manager-only.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room payload", err.Error())
		return
	}

	now := time.Now()
	room := &models.Room{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		Amenities:   req.Amenities,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Available != nil {
		room.Available = *req.Available
	}

	if err := h.Rooms.Create(room); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create room", "")
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoom replaces a room's mutable fields. Manager-only. Flipping
// Available off hides the room from future suggestions and bookings without
// touching existing ones.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	room, err := h.Rooms.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load room", "")
		return
	}
	if room == nil {
		utils.JSONError(c, http.StatusNotFound, "Room not found", "")
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room payload", err.Error())
		return
	}

	room.Name = req.Name
	room.Description = req.Description
	room.Capacity = req.Capacity
	room.Amenities = req.Amenities
	if req.Available != nil {
		room.Available = *req.Available
	}
	room.UpdatedAt = time.Now()

	if err := h.Rooms.Update(room); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update room", "")
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room from the catalog. Manager-only.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	room, err := h.Rooms.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load room", "")
		return
	}
	if room == nil {
		utils.JSONError(c, http.StatusNotFound, "Room not found", "")
		return
	}

	if err := h.Rooms.Delete(room.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete room", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
