package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"open_toilet/internal/controllers"
	"open_toilet/internal/models"
	"open_toilet/internal/store"
	"open_toilet/internal/testutil"
)

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t)
	return SetupRouter(store.New(db)), db
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, w.Body.String())
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	decodeJSON(t, w, &resp)
	return resp.Error
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupServer(t)

	w := performRequest(r, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeJSON(t, w, &resp)
	if resp.Status != "OK" || resp.Message != "Backend is running" {
		t.Errorf("Unexpected health payload: %+v", resp)
	}
}

func TestCreateRestroomEndpoint(t *testing.T) {
	r, _ := setupServer(t)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "valid submission",
			body: map[string]interface{}{
				"name": "Men's Room, 2nd Floor", "latitude": 40.7128, "longitude": -74.0060,
				"type": "male", "locationName": "Office Tower",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing name",
			body:           map[string]interface{}{"latitude": 40.7128, "longitude": -74.0060, "type": "male"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing required fields",
		},
		{
			name:           "zero latitude counts as missing",
			body:           map[string]interface{}{"name": "Equator", "latitude": 0, "longitude": -74.0, "type": "male"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing required fields",
		},
		{
			name:           "unknown type",
			body:           map[string]interface{}{"name": "Anywhere", "latitude": 40.0, "longitude": -74.0, "type": "unisex"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid restroom type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, "POST", "/restrooms", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedError != "" {
				if got := errorMessage(t, w); got != tt.expectedError {
					t.Errorf("Expected error %q, got %q", tt.expectedError, got)
				}
				return
			}

			var resp controllers.RestroomResponse
			decodeJSON(t, w, &resp)
			if resp.Name != "Men's Room, 2nd Floor" || resp.Type != "male" {
				t.Errorf("Unexpected restroom payload: %+v", resp)
			}
			if resp.Location.Latitude != 40.7128 || resp.Location.Longitude != -74.0060 {
				t.Errorf("Location coordinates not preserved: %+v", resp.Location)
			}
			if resp.Location.Name != "Office Tower" {
				t.Errorf("Expected location named from locationName, got %q", resp.Location.Name)
			}
			if resp.AccessCodes == nil || len(resp.AccessCodes) != 0 {
				t.Errorf("Expected empty access_codes array, got %v", resp.AccessCodes)
			}
		})
	}
}

func TestCreateRestroomSharesNearbyLocation(t *testing.T) {
	r, _ := setupServer(t)

	var first, second controllers.RestroomResponse

	w := performRequest(r, "POST", "/restrooms", map[string]interface{}{
		"name": "First", "latitude": 40.7128, "longitude": -74.0060, "type": "male",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("first create: expected 200, got %d", w.Code)
	}
	decodeJSON(t, w, &first)

	w = performRequest(r, "POST", "/restrooms", map[string]interface{}{
		"name": "Second", "latitude": 40.71285, "longitude": -74.00605, "type": "female",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("second create: expected 200, got %d", w.Code)
	}
	decodeJSON(t, w, &second)

	if first.LocationID != second.LocationID {
		t.Errorf("Expected shared location, got %d and %d", first.LocationID, second.LocationID)
	}
}

func TestListRestroomsRoundTrip(t *testing.T) {
	r, _ := setupServer(t)

	w := performRequest(r, "POST", "/restrooms", map[string]interface{}{
		"name": "Round Trip", "latitude": 40.7128, "longitude": -74.0060, "type": "neutral",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", w.Code)
	}

	w = performRequest(r, "GET", "/restrooms", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}

	// A restroom with no codes must serialize an empty array, not null
	if !strings.Contains(w.Body.String(), `"access_codes":[]`) {
		t.Errorf("Expected empty access_codes array in body: %s", w.Body.String())
	}

	var restrooms []controllers.RestroomResponse
	decodeJSON(t, w, &restrooms)
	if len(restrooms) != 1 {
		t.Fatalf("Expected 1 restroom, got %d", len(restrooms))
	}
	got := restrooms[0]
	if got.Name != "Round Trip" || got.Type != "neutral" {
		t.Errorf("Unexpected restroom: %+v", got)
	}
	if got.Location.Latitude != 40.7128 || got.Location.Longitude != -74.0060 {
		t.Errorf("Coordinates changed in round trip: %+v", got.Location)
	}
}

func TestAccessCodeEndpoints(t *testing.T) {
	r, _ := setupServer(t)

	var restroom controllers.RestroomResponse
	w := performRequest(r, "POST", "/restrooms", map[string]interface{}{
		"name": "Coded", "latitude": 40.7128, "longitude": -74.0060, "type": "neutral",
	})
	decodeJSON(t, w, &restroom)
	restroomID := restroom.ID

	w = performRequest(r, "POST", "/restrooms/"+itoa(restroomID)+"/codes", map[string]interface{}{"code": "1234#"})
	if w.Code != http.StatusOK {
		t.Fatalf("add code: expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID         uint   `json:"id"`
		RestroomID uint   `json:"restroom_id"`
		Code       string `json:"code"`
		Likes      int    `json:"likes"`
		Dislikes   int    `json:"dislikes"`
		Message    string `json:"message"`
	}
	decodeJSON(t, w, &created)
	if created.Code != "1234#" || created.Likes != 0 || created.Dislikes != 0 {
		t.Errorf("Unexpected code payload: %+v", created)
	}
	if created.RestroomID != restroomID {
		t.Errorf("Expected restroom_id %d, got %d", restroomID, created.RestroomID)
	}

	// Duplicate code for the same restroom
	w = performRequest(r, "POST", "/restrooms/"+itoa(restroomID)+"/codes", map[string]interface{}{"code": "1234#"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate code: expected 400, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != "This code already exists for this restroom" {
		t.Errorf("Unexpected duplicate error: %q", got)
	}

	// Empty code
	w = performRequest(r, "POST", "/restrooms/"+itoa(restroomID)+"/codes", map[string]interface{}{"code": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty code: expected 400, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != "Code is required" {
		t.Errorf("Unexpected empty-code error: %q", got)
	}
}

func TestVoteEndpoint(t *testing.T) {
	r, db := setupServer(t)

	var restroom controllers.RestroomResponse
	w := performRequest(r, "POST", "/restrooms", map[string]interface{}{
		"name": "Voted", "latitude": 40.7128, "longitude": -74.0060, "type": "neutral",
	})
	decodeJSON(t, w, &restroom)

	var code struct {
		ID uint `json:"id"`
	}
	w = performRequest(r, "POST", "/restrooms/"+itoa(restroom.ID)+"/codes", map[string]interface{}{"code": "0000"})
	decodeJSON(t, w, &code)

	w = performRequest(r, "POST", "/restrooms/codes/"+itoa(code.ID)+"/vote", map[string]interface{}{"type": "like"})
	if w.Code != http.StatusOK {
		t.Fatalf("vote: expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	var voted struct {
		Message string `json:"message"`
	}
	decodeJSON(t, w, &voted)
	if voted.Message != "like recorded successfully" {
		t.Errorf("Unexpected vote message: %q", voted.Message)
	}

	var stored models.AccessCode
	if err := db.First(&stored, code.ID).Error; err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Likes != 1 || stored.Dislikes != 0 {
		t.Errorf("Expected likes=1 dislikes=0, got likes=%d dislikes=%d", stored.Likes, stored.Dislikes)
	}

	w = performRequest(r, "POST", "/restrooms/codes/"+itoa(code.ID)+"/vote", map[string]interface{}{"type": "maybe"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid vote: expected 400, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != `Vote type must be "like" or "dislike"` {
		t.Errorf("Unexpected invalid-vote error: %q", got)
	}

	w = performRequest(r, "POST", "/restrooms/codes/99999/vote", map[string]interface{}{"type": "like"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing code: expected 404, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != "Access code not found" {
		t.Errorf("Unexpected missing-code error: %q", got)
	}
}

func TestUpdateRestroomEndpoint(t *testing.T) {
	r, _ := setupServer(t)

	var restroom controllers.RestroomResponse
	w := performRequest(r, "POST", "/restrooms", map[string]interface{}{
		"name": "Before", "latitude": 40.7128, "longitude": -74.0060, "type": "neutral",
	})
	decodeJSON(t, w, &restroom)
	performRequest(r, "POST", "/restrooms/"+itoa(restroom.ID)+"/codes", map[string]interface{}{"code": "1111"})

	w = performRequest(r, "PUT", "/restrooms/"+itoa(restroom.ID), map[string]interface{}{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("whitespace name: expected 400, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != "Name is required" {
		t.Errorf("Unexpected error: %q", got)
	}

	w = performRequest(r, "PUT", "/restrooms/99999", map[string]interface{}{"name": "Whatever"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing restroom: expected 404, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != "Restroom not found" {
		t.Errorf("Unexpected error: %q", got)
	}

	w = performRequest(r, "PUT", "/restrooms/"+itoa(restroom.ID), map[string]interface{}{"name": "After"})
	if w.Code != http.StatusOK {
		t.Fatalf("rename: expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	var updated controllers.RestroomResponse
	decodeJSON(t, w, &updated)
	if updated.Name != "After" {
		t.Errorf("Expected renamed restroom, got %q", updated.Name)
	}
	if updated.Type != "neutral" || updated.LocationID != restroom.LocationID {
		t.Error("Rename changed fields other than the name")
	}
	if len(updated.AccessCodes) != 1 || updated.AccessCodes[0].Code != "1111" {
		t.Errorf("Expected hydrated record with its code, got %v", updated.AccessCodes)
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
