package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"open_toilet/internal/models"
	"open_toilet/internal/store"
)

// LocationResponse is the nested location object in API output.
type LocationResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// AccessCodeResponse is one door code with its vote counters.
type AccessCodeResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	CreatedAt time.Time `json:"created_at"`
}

// RestroomResponse struct for API output
// This mirrors models.Restroom but flattens GORM bookkeeping and always
// carries a non-null access_codes array.
type RestroomResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Type        string               `json:"type"`
	LocationID  uint                 `json:"location_id"`
	CreatedAt   time.Time            `json:"created_at"`
	Location    LocationResponse     `json:"location"`
	AccessCodes []AccessCodeResponse `json:"access_codes"`
}

// toRestroomResponse converts a models.Restroom to a RestroomResponse
func toRestroomResponse(restroom models.Restroom) RestroomResponse {
	codes := make([]AccessCodeResponse, 0, len(restroom.AccessCodes))
	for _, ac := range restroom.AccessCodes {
		codes = append(codes, AccessCodeResponse{
			ID:        ac.ID,
			Code:      ac.Code,
			Likes:     ac.Likes,
			Dislikes:  ac.Dislikes,
			CreatedAt: ac.CreatedAt,
		})
	}
	return RestroomResponse{
		ID:         restroom.ID,
		Name:       restroom.Name,
		Type:       restroom.Type,
		LocationID: restroom.LocationID,
		CreatedAt:  restroom.CreatedAt,
		Location: LocationResponse{
			ID:        restroom.Location.ID,
			Name:      restroom.Location.Name,
			Latitude:  restroom.Location.Latitude,
			Longitude: restroom.Location.Longitude,
			Address:   restroom.Location.Address,
		},
		AccessCodes: codes,
	}
}

// RestroomController serves the restroom and access-code endpoints. The
// store is injected so tests can run against an in-memory database.
type RestroomController struct {
	store *store.Store
	feed  *FeedHub
}

// NewRestroomController wires the controller to its store and the live
// feed hub. feed may be nil when no WebSocket clients are served.
func NewRestroomController(s *store.Store, feed *FeedHub) *RestroomController {
	return &RestroomController{store: s, feed: feed}
}

// ListRestrooms returns all restrooms hydrated with their location and
// access codes, newest location first.
func (ctl *RestroomController) ListRestrooms(c *gin.Context) {
	restrooms, err := ctl.store.ListRestrooms()
	if err != nil {
		logrus.WithError(err).Error("ListRestrooms: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]RestroomResponse, 0, len(restrooms))
	for _, r := range restrooms {
		responses = append(responses, toRestroomResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateRestroom resolves the submission to a location (reusing one
// within tolerance) and creates the restroom under it.
func (ctl *RestroomController) CreateRestroom(c *gin.Context) {
	var input store.RestroomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRestroom: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	restroom, err := ctl.store.CreateRestroom(input)
	if err != nil {
		ctl.respondError(c, "CreateRestroom", err)
		return
	}

	response := toRestroomResponse(*restroom)
	if ctl.feed != nil {
		ctl.feed.Broadcast(response)
	}
	c.JSON(http.StatusOK, createRestroomResponse{
		RestroomResponse: response,
		Message:          "Restroom added successfully",
	})
}

// createRestroomResponse adds the confirmation message the map client
// shows after a submission.
type createRestroomResponse struct {
	RestroomResponse
	Message string `json:"message"`
}

// AddAccessCode records a new door code for a restroom.
func (ctl *RestroomController) AddAccessCode(c *gin.Context) {
	restroomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restroom ID"})
		return
	}

	var input struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}

	accessCode, err := ctl.store.AddAccessCode(uint(restroomID), input.Code)
	if err != nil {
		ctl.respondError(c, "AddAccessCode", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          accessCode.ID,
		"restroom_id": accessCode.RestroomID,
		"code":        accessCode.Code,
		"likes":       accessCode.Likes,
		"dislikes":    accessCode.Dislikes,
		"message":     "Access code added successfully",
	})
}

// UpdateRestroom edits a restroom's name. Type and location are
// immutable.
func (ctl *RestroomController) UpdateRestroom(c *gin.Context) {
	restroomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restroom ID"})
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	restroom, err := ctl.store.RenameRestroom(uint(restroomID), input.Name)
	if err != nil {
		ctl.respondError(c, "UpdateRestroom", err)
		return
	}

	c.JSON(http.StatusOK, toRestroomResponse(*restroom))
}

// VoteOnCode increments a code's like or dislike counter.
func (ctl *RestroomController) VoteOnCode(c *gin.Context) {
	codeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid access code ID"})
		return
	}

	var input struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Vote type must be "like" or "dislike"`})
		return
	}

	if err := ctl.store.VoteOnAccessCode(uint(codeID), input.Type); err != nil {
		ctl.respondError(c, "VoteOnCode", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": input.Type + " recorded successfully"})
}

// respondError maps store errors to HTTP statuses: validation and
// conflict failures are 400, missing records 404, anything else 500
// with the underlying message passed through.
func (ctl *RestroomController) respondError(c *gin.Context, op string, err error) {
	switch {
	case store.IsValidation(err) || store.IsConflict(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case store.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error(op + ": store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
