package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shojha24/u-c-lotta-adipose/app/activity"
	"github.com/shojha24/u-c-lotta-adipose/app/dining"
)

func NewHandler(docs DocumentSource, act ActivitySource) *Handler {
	return &Handler{
		docs:     docs,
		activity: act,
		now:      time.Now,
	}
}

// respond writes a successful payload. Dining data changes at most a few
// times a day, so responses are marked cacheable.
func (h *Handler) respond(c *gin.Context, payload any) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, payload)
}

func (h *Handler) respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": gin.H{
		"message":    message,
		"statusCode": status,
	}})
}

// document fetches the cached dining document, answering the request with an
// error when no data is available at all.
func (h *Handler) document(c *gin.Context) *dining.Document {
	doc, err := h.docs.Cached(c.Request.Context())
	if err != nil {
		slog.Error("Dining data unavailable", "error", err)
		h.respondError(c, http.StatusInternalServerError, "Dining data unavailable")
		return nil
	}
	return doc
}

func lastUpdated(doc *dining.Document) any {
	if doc.LastUpdated == "" {
		return nil
	}
	return doc.LastUpdated
}

func (h *Handler) GetHalls(c *gin.Context) {
	openOnly := false
	if raw, ok := c.GetQuery("open"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid open parameter")
			return
		}
		openOnly = parsed
	}

	doc := h.document(c)
	if doc == nil {
		return
	}

	ids := make([]string, 0, len(doc.Halls))
	for id := range doc.Halls {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	halls := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		hall := doc.Halls[id]
		isOpen := hall.OpenNow(h.now())
		if openOnly && !isOpen {
			continue
		}
		halls = append(halls, gin.H{
			"id":     id,
			"name":   dining.HallName(id),
			"link":   hall.Link,
			"isOpen": isOpen,
		})
	}

	h.respond(c, gin.H{
		"halls":       halls,
		"lastUpdated": lastUpdated(doc),
	})
}

func (h *Handler) GetHall(c *gin.Context) {
	id := c.Param("id")
	if !dining.ValidHall(id) {
		h.respondError(c, http.StatusBadRequest, "Invalid hall ID")
		return
	}

	doc := h.document(c)
	if doc == nil {
		return
	}

	hall := doc.Hall(id)
	if hall == nil {
		h.respondError(c, http.StatusNotFound, "Hall not found")
		return
	}

	hours := hall.Hours
	if hours == nil {
		hours = map[string]*dining.DayHours{}
	}

	h.respond(c, gin.H{
		"id":          id,
		"name":        dining.HallName(id),
		"link":        hall.Link,
		"hours":       hours,
		"isOpen":      hall.OpenNow(h.now()),
		"lastUpdated": lastUpdated(doc),
	})
}

func (h *Handler) GetHallHours(c *gin.Context) {
	id := c.Param("id")
	if !dining.ValidHall(id) {
		h.respondError(c, http.StatusBadRequest, "Invalid hall ID")
		return
	}

	doc := h.document(c)
	if doc == nil {
		return
	}

	hall := doc.Hall(id)
	if hall == nil {
		h.respondError(c, http.StatusNotFound, "Hall not found")
		return
	}

	hours := hall.Hours
	if hours == nil {
		hours = map[string]*dining.DayHours{}
	}

	if day := strings.ToLower(c.Query("day")); day != "" {
		if !dining.ValidDay(day) {
			h.respondError(c, http.StatusBadRequest, "Invalid day parameter")
			return
		}
		hours = map[string]*dining.DayHours{day: hours[day]}
	}

	h.respond(c, gin.H{
		"hallId":      id,
		"hours":       hours,
		"lastUpdated": lastUpdated(doc),
	})
}

func (h *Handler) GetHallMenu(c *gin.Context) {
	id := c.Param("id")
	if !dining.ValidHall(id) {
		h.respondError(c, http.StatusBadRequest, "Invalid hall ID")
		return
	}

	date := c.Query("date")
	if date != "" && !dining.ValidDate(date) {
		h.respondError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	doc := h.document(c)
	if doc == nil {
		return
	}

	hall := doc.Hall(id)
	if hall == nil {
		h.respondError(c, http.StatusNotFound, "Hall not found")
		return
	}

	var menu any
	switch {
	case date != "":
		day, ok := hall.Menu[date]
		if !ok {
			h.respondError(c, http.StatusNotFound, "Menu not found for specified date")
			return
		}

		var payload any = day
		if meal := c.Query("meal"); meal != "" {
			if sections, ok := day.Meals[meal]; ok {
				payload = gin.H{meal: sections}
			}
		}
		menu = gin.H{date: payload}
	case hall.Menu != nil:
		menu = hall.Menu
	default:
		menu = gin.H{}
	}

	h.respond(c, gin.H{
		"hallId":      id,
		"menu":        menu,
		"lastUpdated": lastUpdated(doc),
	})
}

func (h *Handler) GetHallMenuByDate(c *gin.Context) {
	id := c.Param("id")
	date := c.Param("date")
	if !dining.ValidHall(id) || !dining.ValidDate(date) {
		h.respondError(c, http.StatusBadRequest, "Invalid hall ID or date format")
		return
	}

	doc := h.document(c)
	if doc == nil {
		return
	}

	hall := doc.Hall(id)
	if hall == nil {
		h.respondError(c, http.StatusNotFound, "Menu not found")
		return
	}
	day, ok := hall.Menu[date]
	if !ok {
		h.respondError(c, http.StatusNotFound, "Menu not found")
		return
	}

	h.respond(c, gin.H{
		"hallId":      id,
		"date":        date,
		"menu":        day,
		"lastUpdated": lastUpdated(doc),
	})
}

func (h *Handler) GetTrucks(c *gin.Context) {
	doc := h.document(c)
	if doc == nil {
		return
	}

	h.respond(c, gin.H{
		"trucks":      doc.Trucks,
		"lastUpdated": lastUpdated(doc),
	})
}

func (h *Handler) GetItem(c *gin.Context) {
	id := c.Param("id")

	doc := h.document(c)
	if doc == nil {
		return
	}

	item := doc.Item(id)
	if item == nil {
		h.respondError(c, http.StatusNotFound, "Item not found")
		return
	}

	// Item fields sit at the top level of the payload next to the id.
	data, err := json.Marshal(item)
	if err != nil {
		slog.Error("Failed to encode item", "item", id, "error", err)
		h.respondError(c, http.StatusInternalServerError, "Failed to encode item")
		return
	}
	payload := gin.H{}
	if err := json.Unmarshal(data, &payload); err != nil {
		slog.Error("Failed to encode item", "item", id, "error", err)
		h.respondError(c, http.StatusInternalServerError, "Failed to encode item")
		return
	}
	payload["id"] = id
	payload["lastUpdated"] = lastUpdated(doc)

	h.respond(c, payload)
}

func (h *Handler) SearchItems(c *gin.Context) {
	doc := h.document(c)
	if doc == nil {
		return
	}

	results := doc.SearchItems(c.Query("q"), c.Query("dietary"), c.Query("allergen"))

	h.respond(c, gin.H{
		"items":       results,
		"count":       len(results),
		"lastUpdated": lastUpdated(doc),
	})
}

func (h *Handler) GetAllActivity(c *gin.Context) {
	h.respond(c, h.activity.All(c.Request.Context()))
}

func (h *Handler) GetActivity(c *gin.Context) {
	id := c.Param("id")

	reading, err := h.activity.One(c.Request.Context(), id)
	switch {
	case errors.Is(err, activity.ErrUnknownLocation):
		h.respondError(c, http.StatusNotFound, "Invalid location ID")
		return
	case errors.Is(err, activity.ErrNoReading):
		h.respondError(c, http.StatusInternalServerError, "Activity data not found")
		return
	case err != nil:
		slog.Error("Failed to read activity", "location", id, "error", err)
		h.respondError(c, http.StatusInternalServerError, "Error fetching activity data")
		return
	}

	h.respond(c, gin.H{id: reading})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"service":   "ucla-dining-api",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if doc, err := h.docs.Cached(c.Request.Context()); err == nil {
		health["halls"] = len(doc.Halls)
		health["items"] = len(doc.Items)
	}

	c.JSON(http.StatusOK, health)
}
